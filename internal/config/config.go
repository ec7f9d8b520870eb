package config

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	LogZapMode               string `mapstructure:"LOG_ZAP_MODE"`
	PrintConfigurationToLogs string `mapstructure:"PRINT_CONFIGURATION_TO_LOGS"`
	RPCPort                  int    `mapstructure:"RPC_PORT"`
	ResolveTimeoutSeconds    int    `mapstructure:"RESOLVE_TIMEOUT_SECONDS"`

	EthereumNodeUrl string `mapstructure:"ETHEREUM_NODE_URL"`
	BaseNodeUrl     string `mapstructure:"BASE_NODE_URL"`
	OptimismNodeUrl string `mapstructure:"OPTIMISM_NODE_URL"`
	ZoraNodeUrl     string `mapstructure:"ZORA_NODE_URL"`

	IpfsGatewayUrl         string `mapstructure:"IPFS_GATEWAY_URL"`
	MetadataTimeoutSeconds int    `mapstructure:"METADATA_TIMEOUT_SECONDS"`
	MetadataCachePath      string `mapstructure:"METADATA_CACHE_PATH"`
	SqlitePath             string `mapstructure:"SQLITE_PATH"`

	LensActionModuleAddress string `mapstructure:"LENS_ACTION_MODULE_ADDRESS"`

	ZoraApiKey              string `mapstructure:"ZORA_API_KEY"`
	ZoraFeePercent          uint64 `mapstructure:"ZORA_FEE_PERCENT"`
	BasepaintFeePercent     uint64 `mapstructure:"BASEPAINT_FEE_PERCENT"`
	ResaleMarketAddress     string `mapstructure:"RESALE_MARKET_ADDRESS"`
	ResaleDefaultCollection string `mapstructure:"RESALE_DEFAULT_COLLECTION"`
}

// Used when neither the config file nor the environment sets a value.
var defaults = map[string]interface{}{
	"RPC_PORT":                 8080,
	"RESOLVE_TIMEOUT_SECONDS":  30,
	"IPFS_GATEWAY_URL":         "https://ipfs.io/ipfs/",
	"METADATA_TIMEOUT_SECONDS": 10,
	"SQLITE_PATH":              "./db/sqlite/sqlite",
}

var lock = &sync.Mutex{}
var config *Config

var Get = get

func get() Config {
	if config == nil {
		lock.Lock()
		defer lock.Unlock()
		if config == nil {
			c := loadConfig()
			config = &c
		}
	}
	return *config
}

func loadConfig() Config {
	viperAddConfigFile()
	viperAddEnv()
	cfg := initializeCfg()
	debugConfig(cfg)
	return cfg
}

func viperAddConfigFile() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
}

func viperAddEnv() {
	viper.AutomaticEnv()
	// This makes sure that all envs are binded even if they are not represented in config file (https://github.com/spf13/viper/issues/584)
	valueOfConfig := reflect.ValueOf(&Config{}).Elem()
	fieldsOfConfig := reflect.TypeOf(&Config{}).Elem()
	for i := 0; i < valueOfConfig.NumField(); i++ {
		field, _ := fieldsOfConfig.FieldByName(valueOfConfig.Type().Field(i).Name)
		mapStructureVal := field.Tag.Get("mapstructure")
		err := viper.BindEnv(mapStructureVal)
		if err != nil {
			panic(fmt.Sprintf("Error binding env val '%v': %v", mapStructureVal, err))
		}
	}
}

func initializeCfg() Config {
	var cfg Config
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("fatal error reading config file: %v", err))
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		panic(fmt.Sprintf("error unmarshaling config: %v", err))
	}
	return cfg
}

func debugConfig(cfg Config) {
	if cfg.PrintConfigurationToLogs == "true" {
		redacted := cfg
		if redacted.ZoraApiKey != "" {
			redacted.ZoraApiKey = "***"
		}
		b, err := json.Marshal(redacted)
		var result string
		if err != nil {
			result = "[FAILED TO CONVERT CONF TO STRING]"
		} else {
			result = string(b)
		}
		log.Printf("[APP CONFIGURATION]: %v\n", result)
	}
}

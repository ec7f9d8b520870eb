package eth

import (
	"testing"

	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/eth/mocks"
	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEthClient_Success(t *testing.T) {
	originalConfig := config.Get
	defer func() { config.Get = originalConfig }()

	config.Get = func() config.Config {
		return config.Config{
			EthereumNodeUrl: "http://localhost:8545",
		}
	}

	client, err := createEthClient(ChainEthereum)
	assert.NoError(t, err)
	assert.NotNil(t, client)
	client.Close()
}

func TestCreateEthClient_EmptyURL(t *testing.T) {
	originalConfig := config.Get
	defer func() { config.Get = originalConfig }()

	config.Get = func() config.Config {
		return config.Config{
			EthereumNodeUrl: "http://localhost:8545",
		}
	}

	client, err := createEthClient(ChainBase)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "node url for chain 8453 is not set")
}

func TestCreateEthClient_InvalidURL(t *testing.T) {
	originalConfig := config.Get
	defer func() { config.Get = originalConfig }()

	config.Get = func() config.Config {
		return config.Config{
			EthereumNodeUrl: "invalid://url",
		}
	}

	client, err := createEthClient(ChainEthereum)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to configure Ethereum client")
}

func TestDialChainClients_SkipsUnconfiguredChains(t *testing.T) {
	originalConfig := config.Get
	originalCreate := CreateEthClient
	defer func() {
		config.Get = originalConfig
		CreateEthClient = originalCreate
	}()

	config.Get = func() config.Config {
		return config.Config{
			BaseNodeUrl: "http://base.local",
			ZoraNodeUrl: "http://zora.local",
		}
	}
	var dialed []uint64
	CreateEthClient = func(chainID uint64) (EthClient, error) {
		dialed = append(dialed, chainID)
		return mocks.NewEthClient(t), nil
	}

	clients, err := DialChainClients()
	require.NoError(t, err)

	assert.Equal(t, []uint64{ChainBase, ChainZora}, dialed)
	assert.Equal(t, []uint64{ChainBase, ChainZora}, clients.ChainIDs())
	_, ok := clients.For(ChainBase)
	assert.True(t, ok)
	_, ok = clients.For(ChainEthereum)
	assert.False(t, ok)

	reader, err := clients.ReaderFor(ChainZora)
	require.NoError(t, err)
	assert.NotNil(t, reader)
	_, err = clients.ReaderFor(ChainEthereum)
	assert.ErrorIs(t, err, nfterrors.ErrChainReadFailed)
}

func TestChainIDForPrefix(t *testing.T) {
	testCases := []struct {
		prefix string
		want   uint64
		ok     bool
	}{
		{"eth", ChainEthereum, true},
		{"oeth", ChainOptimism, true},
		{"base", ChainBase, true},
		{"zora", ChainZora, true},
		{"sol", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.prefix, func(t *testing.T) {
			got, ok := ChainIDForPrefix(tc.prefix)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

package platform

import "github.com/6529-Collections/nftactions/internal/eth"

var OwnableABI = eth.MustParseABI("Ownable", `[
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`)

var ERC721MetadataABI = eth.MustParseABI("ERC721Metadata", `[
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
]`)

var ERC1155MetadataABI = eth.MustParseABI("ERC1155MetadataURI", `[
	{"type":"function","name":"uri","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"name":"","type":"string"}]}
]`)

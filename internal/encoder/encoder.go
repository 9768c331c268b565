package encoder

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/models"
)

// Canonical function signatures hashed into 4-byte selectors.
const (
	sigTransfer = "transfer(address,uint256)"
	sigApprove  = "approve(address,uint256)"
	sigSwap     = "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// selector returns the first 4 bytes of the Keccak-256 hash of a canonical
// function signature.
func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// parseAddress validates and checksums an address: exactly 40 hex characters
// after an optional 0x prefix. The field name scopes the usage error.
func parseAddress(field, input string) (common.Address, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return common.Address{}, cerrors.Newf(cerrors.CodeUsage, "missing %s", field)
	}
	hexPart := strings.TrimPrefix(trimmed, "0x")
	if len(hexPart) != 40 {
		return common.Address{}, cerrors.Newf(cerrors.CodeUsage, "invalid %s: expected 40 hex characters, got %d", field, len(hexPart))
	}
	if _, err := hex.DecodeString(hexPart); err != nil {
		return common.Address{}, cerrors.Newf(cerrors.CodeUsage, "invalid %s: not a hex address", field)
	}
	return common.HexToAddress(trimmed), nil
}

// parseAmount parses a non-negative integer amount. Decimal by default, a 0x
// prefix selects base 16. Anything negative, fractional, or past 256 bits is
// a usage error.
func parseAmount(field, input string) (*big.Int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, cerrors.Newf(cerrors.CodeUsage, "missing %s", field)
	}

	base := 10
	digits := trimmed
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		base = 16
		digits = trimmed[2:]
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid %s: %q is not an integer", field, input)
	}
	if value.Sign() < 0 {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid %s: negative amount", field)
	}
	if value.Cmp(maxUint256) > 0 {
		return nil, cerrors.Newf(cerrors.CodeUsage, "invalid %s: exceeds 256 bits", field)
	}
	return value, nil
}

// word left-pads a value to one 32-byte ABI word.
func word(value []byte) []byte {
	padded := make([]byte, 32)
	copy(padded[32-len(value):], value)
	return padded
}

func addressWord(addr common.Address) []byte {
	return word(addr.Bytes())
}

func amountWord(amount *big.Int) []byte {
	return word(amount.Bytes())
}

// BuildTransferNative constructs a plain value transfer with no calldata.
func BuildTransferNative(toAddress, amountWei, chainID string) (*models.TxRequest, error) {
	to, err := parseAddress("toAddress", toAddress)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amountWei", amountWei)
	if err != nil {
		return nil, err
	}
	return &models.TxRequest{
		To:      to.Hex(),
		Value:   amount.String(),
		Data:    "0x",
		ChainID: chainID,
	}, nil
}

// BuildTransferERC20 encodes transfer(address,uint256) against the token
// contract.
func BuildTransferERC20(tokenAddress, toAddress, amountRaw string) (*models.TxRequest, error) {
	return buildTwoArgCall(sigTransfer, tokenAddress, "toAddress", toAddress, amountRaw)
}

// BuildApproveERC20 encodes approve(address,uint256) against the token
// contract.
func BuildApproveERC20(tokenAddress, spenderAddress, amountRaw string) (*models.TxRequest, error) {
	return buildTwoArgCall(sigApprove, tokenAddress, "spenderAddress", spenderAddress, amountRaw)
}

func buildTwoArgCall(signature, tokenAddress, subjectField, subjectValue, amountRaw string) (*models.TxRequest, error) {
	token, err := parseAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	subject, err := parseAddress(subjectField, subjectValue)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amountRaw", amountRaw)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, 4+2*32)
	data = append(data, selector(signature)...)
	data = append(data, addressWord(subject)...)
	data = append(data, amountWord(amount)...)

	return &models.TxRequest{
		To:    token.Hex(),
		Value: "0",
		Data:  "0x" + hex.EncodeToString(data),
	}, nil
}

// BuildSwap encodes swapExactTokensForTokens(uint256,uint256,address[],
// address,uint256). Head layout: amountIn, amountOutMin, the dynamic-array
// offset (0xa0 for five head words), recipient, deadline; the tail carries
// the path length and its padded address elements.
func BuildSwap(routerAddress, amountIn, amountOutMin string, path []string, toAddress, deadline string) (*models.TxRequest, error) {
	router, err := parseAddress("routerAddress", routerAddress)
	if err != nil {
		return nil, err
	}
	in, err := parseAmount("amountIn", amountIn)
	if err != nil {
		return nil, err
	}
	outMin, err := parseAmount("amountOutMin", amountOutMin)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, cerrors.New(cerrors.CodeUsage, "invalid path: need at least two addresses")
	}
	pathAddrs := make([]common.Address, len(path))
	for i, hop := range path {
		addr, err := parseAddress("path", hop)
		if err != nil {
			return nil, err
		}
		pathAddrs[i] = addr
	}
	to, err := parseAddress("toAddress", toAddress)
	if err != nil {
		return nil, err
	}
	deadlineVal, err := parseAmount("deadline", deadline)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, 4+(6+len(pathAddrs))*32)
	data = append(data, selector(sigSwap)...)
	data = append(data, amountWord(in)...)
	data = append(data, amountWord(outMin)...)
	data = append(data, amountWord(big.NewInt(5*32))...)
	data = append(data, addressWord(to)...)
	data = append(data, amountWord(deadlineVal)...)
	data = append(data, amountWord(big.NewInt(int64(len(pathAddrs))))...)
	for _, addr := range pathAddrs {
		data = append(data, addressWord(addr)...)
	}

	return &models.TxRequest{
		To:    router.Hex(),
		Value: "0",
		Data:  "0x" + hex.EncodeToString(data),
	}, nil
}

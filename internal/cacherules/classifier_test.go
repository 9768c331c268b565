package cacherules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/defi-native-core/internal/models"
)

var testDefaults = models.MethodPolicy{
	TTL:                30 * time.Second,
	MaxStale:           300 * time.Second,
	AllowStaleFallback: true,
}

func TestCanonicalMethod_CaseFolding(t *testing.T) {
	classifier, err := NewClassifier(testDefaults)
	require.NoError(t, err)

	tests := []struct {
		input string
		want  string
	}{
		{input: "eth_blockNumber", want: "eth_blockNumber"},
		{input: "ETH_BLOCKNUMBER", want: "eth_blockNumber"},
		{input: "eth_blocknumber", want: "eth_blockNumber"},
		{input: "  eth_gasPrice  ", want: "eth_gasPrice"},
		{input: "eth_getbalance", want: "eth_getBalance"},
		{input: "custom_method", want: "custom_method"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.CanonicalMethod(tt.input))
		})
	}
}

func TestPolicyFor_BespokeMethods(t *testing.T) {
	classifier, err := NewClassifier(testDefaults)
	require.NoError(t, err)

	blockNumber := classifier.PolicyFor("eth_blockNumber")
	assert.Equal(t, 5*time.Second, blockNumber.TTL)
	assert.True(t, blockNumber.AllowStaleFallback)

	chainID := classifier.PolicyFor("eth_chainId")
	assert.Equal(t, 24*time.Hour, chainID.TTL)

	estimateGas := classifier.PolicyFor("eth_estimateGas")
	assert.False(t, estimateGas.AllowStaleFallback, "gas estimates must never be served stale")
}

func TestPolicyFor_UnknownMethodInheritsDefaults(t *testing.T) {
	classifier, err := NewClassifier(testDefaults)
	require.NoError(t, err)

	policy := classifier.PolicyFor("debug_traceTransaction")
	assert.Equal(t, testDefaults, policy)
}

func TestCanonicalizationAlignsPolicyLookup(t *testing.T) {
	classifier, err := NewClassifier(testDefaults)
	require.NoError(t, err)

	upper := classifier.PolicyFor(classifier.CanonicalMethod("ETH_BLOCKNUMBER"))
	lower := classifier.PolicyFor(classifier.CanonicalMethod("eth_blocknumber"))
	assert.Equal(t, upper, lower)
	assert.Equal(t, 5*time.Second, upper.TTL)
}

package offchain_test

import (
	"testing"

	"github.com/krazyTry/bokoup-go/offchain"
	"github.com/stretchr/testify/require"
)

func TestOffchain_CamelCase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"name":                    "name",
		"external_url":            "externalUrl",
		"seller_fee_basis_points": "sellerFeeBasisPoints",
		"trait-type":              "traitType",
		"maxMint":                 "maxMint",
		"_private":                "private",
	}
	for in, want := range tests {
		require.Equal(t, want, offchain.CamelCase(in), in)
	}
}

func TestOffchain_Parse_CamelCaseInput(t *testing.T) {
	t.Parallel()

	doc, err := offchain.Parse([]byte(`{"name":"A","externalUrl":"https://x","sellerFeeBasisPoints":250,"attributes":[{"traitType":"t","value":true}]}`))
	require.NoError(t, err)
	require.Equal(t, "https://x", doc.ExternalURL)
	require.Equal(t, uint16(250), doc.SellerFeeBasisPoints)
	require.Equal(t, []offchain.Attribute{{TraitType: "t", Value: true}}, doc.Attributes)
}

func TestOffchain_Parse_NestedArrays(t *testing.T) {
	t.Parallel()

	doc, err := offchain.Parse([]byte(`{"properties":{"creators":[{"address":"abc","share_pct":100}]}}`))
	require.NoError(t, err)
	props := doc.Raw["properties"].(map[string]any)
	creators := props["creators"].([]any)
	require.Len(t, creators, 1)
	require.Equal(t, map[string]any{"address": "abc", "sharePct": float64(100)}, creators[0])
	require.Empty(t, doc.Attributes)
}

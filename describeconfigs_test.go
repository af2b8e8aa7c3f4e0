package kadmin

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// TestDecodeConfigEntry_V0V1Reconciliation is the version law from spec
// §8: a v0 entry with is_default=true must be observable as both
// is_default==true and source==DEFAULT_CONFIG, and vice versa for v1.
func TestDecodeConfigEntry_V0V1Reconciliation(t *testing.T) {
	t.Run("v0 carries IsDefault, Source is synthesized", func(t *testing.T) {
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name:      "k",
			IsDefault: true,
		}, 0)
		require.True(t, e.IsDefault)
		require.Equal(t, ConfigSourceDefaultConfig, e.Source)
	})

	t.Run("v1 carries Source, IsDefault is synthesized", func(t *testing.T) {
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name:   "k",
			Source: kmsg.ConfigSource(ConfigSourceDefaultConfig),
		}, 1)
		require.True(t, e.IsDefault)
		require.Equal(t, ConfigSourceDefaultConfig, e.Source)
	})

	t.Run("v1 non-default source leaves IsDefault false", func(t *testing.T) {
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name:   "k",
			Source: kmsg.ConfigSource(ConfigSourceDynamicTopic),
		}, 1)
		require.False(t, e.IsDefault)
		require.Equal(t, ConfigSourceDynamicTopic, e.Source)
	})

	t.Run("synonyms only decoded on v1", func(t *testing.T) {
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name:   "k",
			Source: kmsg.ConfigSource(ConfigSourceDynamicTopic),
			ConfigSynonyms: []kmsg.DescribeConfigsResponseResourceConfigConfigSynonym{
				{Name: "fallback", Value: strPtr("x"), Source: kmsg.ConfigSource(ConfigSourceDefaultConfig)},
			},
		}, 1)
		require.Len(t, e.Synonyms, 1)
		require.Equal(t, "fallback", e.Synonyms[0].Name)
	})

	t.Run("v1 entry with zero Source and no synonyms is still decoded as v1", func(t *testing.T) {
		// A legitimate v1 UNKNOWN-source entry has Source==0 and no
		// synonyms, content-identical to a v0 non-default entry. Only
		// the negotiated wire version disambiguates it; decodeConfigEntry
		// must not guess from payload shape.
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name: "k",
		}, 1)
		require.False(t, e.IsDefault)
		require.Equal(t, ConfigSource(0), e.Source)
		require.NotNil(t, e.Synonyms, "v1 always allocates (possibly empty) synonyms")
	})

	t.Run("v0 entry never decodes synonyms even if the struct carries them", func(t *testing.T) {
		e := decodeConfigEntry(kmsg.DescribeConfigsResponseResourceConfig{
			Name:      "k",
			IsDefault: false,
			ConfigSynonyms: []kmsg.DescribeConfigsResponseResourceConfigConfigSynonym{
				{Name: "stray", Value: strPtr("x")},
			},
		}, 0)
		require.Nil(t, e.Synonyms)
	})
}

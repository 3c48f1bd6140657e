package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenFileEmpty(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString("")))

	opts, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, Default(), opts)
}

func TestLoadOverridesFromFile(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	yaml := "strictClauseLengthLimit: 12\nuseChecksums: true\n"
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(yaml)))

	opts, err := Load(v)
	require.NoError(t, err)
	require.EqualValues(t, 12, opts.StrictClauseLengthLimit)
	require.True(t, opts.UseChecksums)
	require.Equal(t, Default().AggregationFactor, opts.AggregationFactor)
}

func TestValidateRejectsBadOptions(t *testing.T) {
	bad := Default()
	bad.StrictClauseLengthLimit = 0
	require.Error(t, Validate(bad))

	bad2 := Default()
	bad2.AggregationFactor = 0
	require.Error(t, Validate(bad2))
}

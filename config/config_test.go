package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/babylonchain/avaproof/config"
	"github.com/babylonchain/avaproof/proof"
)

func TestDefaultConfigUsesCurrentFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	require.Equal(t, proof.Current, cfg.Format())
}

func TestLegacyAvaProofSelectsLegacyFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LegacyAvaProof = true
	require.Equal(t, proof.Legacy, cfg.Format())
}

func TestLoadFromArgsOverridesDefaults(t *testing.T) {
	cfg, err := config.LoadFromArgs([]string{
		"--loglevel=debug",
		"--legacyavaproof",
		"--avaproofstakeutxoconfirmations=6",
		"--stakeutxodustthreshold=5000",
	})
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, proof.Legacy, cfg.Format())
	require.Equal(t, uint32(6), cfg.AvaProofStakeUtxoConfirmations)
	require.Equal(t, proof.Amount(5000), cfg.StakeUtxoDustThreshold)
}

func TestLoadFromArgsRejectsUnknownChoice(t *testing.T) {
	_, err := config.LoadFromArgs([]string{"--loglevel=verbose"})
	require.Error(t, err)
}

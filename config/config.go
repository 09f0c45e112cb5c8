// Package config defines the process-wide configuration this core
// observes: the legacy/current wire format toggle and the minimum
// stake UTXO confirmation depth. A Config is a plain value whose
// fields (and Format()) are passed explicitly to the proof and verify
// code that needs them — nothing here is read from a process-global at
// derivation or validation time. The avaproofd command does not load a
// Config; it takes its settings from its own command flags.
package config

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"

	"github.com/babylonchain/avaproof/proof"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "auto"
	defaultConfigFileName = "avaproofd.conf"
)

// DefaultAppDataDir is the node's default data directory, the same
// btcutil.AppDataDir convention the teacher's daemon configs use for
// their own home directories.
var DefaultAppDataDir = btcutil.AppDataDir("avaproofd", false)

// Config is the process-wide configuration for the avaproofd daemon
// and CLI.
type Config struct {
	LogLevel  string `long:"loglevel" description:"Logging level for all subsystems" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal"`
	LogFormat string `long:"logformat" description:"Logging output format" choice:"auto" choice:"console" choice:"json" choice:"logfmt"`

	// LegacyAvaProof selects the wire/identity format. Process-wide,
	// does not change mid-run; threaded explicitly into every
	// constructor that needs it rather than read back out of this
	// struct deep inside the call stack.
	LegacyAvaProof bool `long:"legacyavaproof" description:"use the legacy avalanche proof wire and identity format"`

	// AvaProofStakeUtxoConfirmations is the minimum confirmation depth
	// a stake UTXO must have to be admissible.
	AvaProofStakeUtxoConfirmations uint32 `long:"avaproofstakeutxoconfirmations" description:"minimum confirmation depth required of a stake UTXO"`

	// StakeUtxoDustThreshold is the minimum admissible stake amount,
	// in the smallest currency unit.
	StakeUtxoDustThreshold proof.Amount `long:"stakeutxodustthreshold" description:"minimum admissible stake amount, in the smallest currency unit"`
}

// DefaultConfig returns a Config populated with the package defaults
// and the spec's default constants.
func DefaultConfig() Config {
	return Config{
		LogLevel:                       defaultLogLevel,
		LogFormat:                      defaultLogFormat,
		LegacyAvaProof:                 proof.AVALANCHE_DEFAULT_LEGACY_PROOF,
		AvaProofStakeUtxoConfirmations: proof.AVALANCHE_DEFAULT_STAKE_UTXO_CONFIRMATIONS,
		StakeUtxoDustThreshold:         0,
	}
}

// Format returns the proof.Format this configuration selects.
func (c Config) Format() proof.Format {
	if c.LegacyAvaProof {
		return proof.Legacy
	}
	return proof.Current
}

// LoadFromArgs parses command-line arguments into a Config seeded with
// DefaultConfig, the same go-flags pattern the teacher's daemon
// configs use.
func LoadFromArgs(args []string) (Config, error) {
	cfg := DefaultConfig()
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Package config reads client settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/krazyTry/bokoup-go/offchain"
	"github.com/krazyTry/bokoup-go/pda"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

const (
	EnvCluster             = "BOKOUP_CLUSTER"
	EnvRPCURL              = "BOKOUP_RPC_URL"
	EnvWSURL               = "BOKOUP_WS_URL"
	EnvCommitment          = "BOKOUP_COMMITMENT"
	EnvKeypair             = "BOKOUP_KEYPAIR"
	EnvConfirmTimeout      = "BOKOUP_CONFIRM_TIMEOUT"
	EnvPollInterval        = "BOKOUP_POLL_INTERVAL"
	EnvMetadataTTL         = "BOKOUP_METADATA_TTL"
	EnvAuctionHouseProgram = "BOKOUP_AUCTION_HOUSE_PROGRAM"
	EnvPromoProgram        = "BOKOUP_PROMO_PROGRAM"
)

var ErrInvalidCluster = errors.New("cluster must be one of [localnet, testnet, mainnet, devnet] or be an http or https url")

// Config is the resolved client configuration. Zero durations leave the
// library defaults in place.
type Config struct {
	Cluster    rpc.Cluster
	Commitment rpc.CommitmentType
	Keypair    solana.PrivateKey
	Programs   pda.ProgramTable

	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	MetadataTTL    time.Duration
}

// ParseCluster accepts a cluster name, its one letter shorthand, or an
// http(s) RPC URL. The WebSocket URL of a custom cluster is the RPC URL
// with a ws(s) scheme and, when a port is given, the next port.
func ParseCluster(s string) (rpc.Cluster, error) {
	switch strings.ToLower(s) {
	case "", "l", "localnet":
		return rpc.LocalNet, nil
	case "d", "devnet":
		return rpc.DevNet, nil
	case "t", "testnet":
		return rpc.TestNet, nil
	case "m", "mainnet", "mainnet-beta":
		return rpc.MainNetBeta, nil
	}
	if !strings.HasPrefix(s, "http") {
		return rpc.Cluster{}, fmt.Errorf("%w: %q", ErrInvalidCluster, s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return rpc.Cluster{}, fmt.Errorf("%w: %v", ErrInvalidCluster, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return rpc.Cluster{}, fmt.Errorf("%w: %q", ErrInvalidCluster, s)
	}
	ws := *u
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return rpc.Cluster{}, fmt.Errorf("%w: bad port %q", ErrInvalidCluster, port)
		}
		ws.Host = u.Hostname() + ":" + strconv.Itoa(n+1)
	}
	if u.Scheme == "https" {
		ws.Scheme = "wss"
	} else {
		ws.Scheme = "ws"
	}
	return rpc.Cluster{Name: s, RPC: s, WS: ws.String()}, nil
}

// Load reads files with godotenv, ".env" when none are given, and resolves
// the configuration. Missing files are ignored. The process environment
// takes precedence over the files, and earlier files over later ones.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	fileEnv := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range values {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}
	return FromEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// FromEnv resolves the configuration from lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cluster, err := ParseCluster(get(EnvCluster))
	if err != nil {
		return nil, err
	}
	if v := get(EnvRPCURL); v != "" {
		cluster.RPC = v
	}
	if v := get(EnvWSURL); v != "" {
		cluster.WS = v
	}

	cfg := &Config{
		Cluster:    cluster,
		Commitment: rpc.CommitmentConfirmed,
		Programs:   pda.DefaultPrograms(),
	}

	if v := get(EnvCommitment); v != "" {
		commitment := rpc.CommitmentType(strings.ToLower(v))
		switch commitment {
		case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
			cfg.Commitment = commitment
		default:
			return nil, fmt.Errorf("%s: unknown commitment %q", EnvCommitment, v)
		}
	}

	if v := get(EnvKeypair); v != "" {
		if cfg.Keypair, err = LoadKeypair(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvKeypair, err)
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvConfirmTimeout, &cfg.ConfirmTimeout},
		{EnvPollInterval, &cfg.PollInterval},
		{EnvMetadataTTL, &cfg.MetadataTTL},
	}
	for _, d := range durations {
		v := get(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("%s: must not be negative", d.key)
		}
		*d.dst = parsed
	}

	programs := []struct {
		key string
		dst *solana.PublicKey
	}{
		{EnvAuctionHouseProgram, &cfg.Programs.AuctionHouse},
		{EnvPromoProgram, &cfg.Programs.Promo},
	}
	for _, p := range programs {
		v := get(p.key)
		if v == "" {
			continue
		}
		id, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = id
	}

	return cfg, nil
}

// LoadKeypair reads a solana-keygen JSON file at s, or decodes s as a
// base58 private key when no such file exists.
func LoadKeypair(s string) (solana.PrivateKey, error) {
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = home + s[1:]
		}
	}
	if _, err := os.Stat(s); err == nil {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(s)
		if err != nil {
			return nil, fmt.Errorf("failed to read keypair file: %w", err)
		}
		return key, nil
	}
	key, err := solana.PrivateKeyFromBase58(s)
	if err != nil {
		return nil, errors.New("keypair is neither a readable file nor a base58 private key")
	}
	return key, nil
}

// RPCClient connects to the configured RPC endpoint.
func (c *Config) RPCClient() *rpc.Client {
	return rpc.New(c.Cluster.RPC)
}

func (c *Config) ExecutorOptions() []solanago.ExecutorOption {
	return []solanago.ExecutorOption{
		solanago.WithCommitment(c.Commitment),
		solanago.WithPollInterval(c.PollInterval),
		solanago.WithConfirmationTimeout(c.ConfirmTimeout),
	}
}

// FetcherConfig returns the off-chain fetcher settings. Unset fields get
// the fetcher defaults on validation.
func (c *Config) FetcherConfig(log *slog.Logger) *offchain.Config {
	return &offchain.Config{
		Logger:   log,
		CacheTTL: c.MetadataTTL,
	}
}

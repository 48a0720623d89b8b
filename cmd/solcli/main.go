// ====================================
// File: cmd/solcli/main.go
// ====================================
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-client/blockhash"
	"github.com/rovshanmuradov/solana-client/client"
	"github.com/rovshanmuradov/solana-client/config"
	"github.com/rovshanmuradov/solana-client/internal/logger"
	"github.com/rovshanmuradov/solana-client/pool"
	"github.com/rovshanmuradov/solana-client/wallet"
)

type rootOptions struct {
	configPath string
	rpcURLs    []string
	commitment string
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "solcli",
		Short:         "Query Solana nodes and submit transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringSliceVar(&opts.rpcURLs, "rpc-url", nil, "RPC endpoint, repeatable; overrides the config file")
	cmd.PersistentFlags().StringVar(&opts.commitment, "commitment", "", "commitment level: processed, confirmed or finalized")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newHealthCmd(opts),
		newBalanceCmd(opts),
		newBlockhashCmd(opts),
		newEpochCmd(opts),
		newAirdropCmd(opts),
		newSendCmd(opts),
		newFeeCmd(opts),
		newConfirmCmd(opts),
	)
	return cmd
}

// app bundles the wired-up pieces a subcommand works with.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	pool   *pool.Pool
	client *client.Client
}

func (o *rootOptions) buildApp() (*app, error) {
	cfg, err := config.Load(o.configPath, func(c *config.Config) {
		if len(o.rpcURLs) > 0 {
			c.RPCList = o.rpcURLs
		}
		if o.commitment != "" {
			c.Commitment = o.commitment
		}
		if o.debug {
			c.DebugLogging = true
		}
	})
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		return nil, err
	}

	p, err := pool.New(cfg.RPCList,
		pool.WithLogger(log.Logger),
		pool.WithRequestTimeout(cfg.RequestTimeout),
		pool.WithMaxRetries(cfg.MaxRetries),
	)
	if err != nil {
		return nil, err
	}

	clientOpts := []client.Option{
		client.WithTransport(p),
		client.WithCommitment(cfg.CommitmentType()),
		client.WithPollInterval(cfg.PollInterval),
		client.WithConfirmTimeout(cfg.ConfirmTimeout),
		client.WithLogger(log.Logger),
	}
	if cfg.BlockhashCache {
		clientOpts = append(clientOpts, client.WithBlockhashCache(blockhash.NewCache(cfg.CacheTTL, cfg.CacheSize)))
	}

	return &app{
		cfg:    cfg,
		log:    log,
		pool:   p,
		client: client.New("", clientOpts...),
	}, nil
}

func (a *app) close() {
	a.pool.Close()
	_ = a.log.Sync()
}

// run wires an app for one subcommand invocation and tears it down after.
func run(o *rootOptions, cmd *cobra.Command, fn func(context.Context, *app) error) error {
	a, err := o.buildApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context(), a)
}

func newHealthCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe every configured node and print its status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				connectErr := a.pool.Connect(ctx)
				for _, s := range a.pool.Stats() {
					state := "healthy"
					if !s.Healthy {
						state = "unreachable"
					}
					fmt.Printf("%-50s %s\n", s.URL, state)
				}
				return connectErr
			})
		},
	}
}

func newBalanceCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <pubkey>",
		Short: "Print the lamport balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				account, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid account: %w", err)
				}
				lamports, err := a.client.GetBalance(ctx, account, "")
				if err != nil {
					return err
				}
				fmt.Printf("%d lamports (%s SOL)\n", lamports, formatSOL(lamports))
				return nil
			})
		},
	}
}

func newBlockhashCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "blockhash",
		Short: "Print the latest blockhash and its expiry height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				result, err := a.client.GetLatestBlockhash(ctx, "")
				if err != nil {
					return err
				}
				fmt.Printf("blockhash:            %s\n", result.Value.Blockhash)
				fmt.Printf("lastValidBlockHeight: %d\n", result.Value.LastValidBlockHeight)
				return nil
			})
		},
	}
}

func newEpochCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "epoch",
		Short: "Print epoch progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				info, err := a.client.GetEpochInfo(ctx, "")
				if err != nil {
					return err
				}
				fmt.Printf("epoch:        %d\n", info.Epoch)
				fmt.Printf("slot:         %d/%d\n", info.SlotIndex, info.SlotsInEpoch)
				fmt.Printf("block height: %d\n", info.BlockHeight)
				return nil
			})
		},
	}
}

func newAirdropCmd(o *rootOptions) *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "airdrop <pubkey> <sol>",
		Short: "Request an airdrop on a test cluster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				account, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid account: %w", err)
				}
				lamports, err := parseSOL(args[1])
				if err != nil {
					return err
				}
				sig, err := a.client.RequestAirdrop(ctx, account, lamports, "")
				if err != nil {
					return err
				}
				fmt.Println(sig)
				if !wait {
					return nil
				}
				status, err := a.client.ConfirmTransaction(ctx, sig)
				if err != nil {
					return err
				}
				fmt.Printf("reached %s at slot %d\n", status.ConfirmationStatus, status.Slot)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the airdrop is confirmed")
	return cmd
}

func newSendCmd(o *rootOptions) *cobra.Command {
	var (
		walletsFile   string
		walletName    string
		skipPreflight bool
		noWait        bool
	)
	cmd := &cobra.Command{
		Use:   "send <recipient> <sol>",
		Short: "Transfer SOL and wait for confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				w, err := resolveWallet(a.cfg, walletsFile, walletName)
				if err != nil {
					return err
				}
				recipient, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid recipient: %w", err)
				}
				lamports, err := parseSOL(args[1])
				if err != nil {
					return err
				}

				tx, err := solana.NewTransaction(
					[]solana.Instruction{w.TransferInstruction(recipient, lamports)},
					solana.Hash{},
					solana.TransactionPayer(w.PublicKey),
				)
				if err != nil {
					return err
				}

				sig, err := a.client.SendTransactionWithOpts(ctx, tx, []solana.PrivateKey{w.PrivateKey}, client.TxOpts{
					SkipPreflight:    a.cfg.SkipPreflight || skipPreflight,
					SkipConfirmation: noWait,
				})
				if sig != (solana.Signature{}) {
					a.log.WithTransaction(sig.String()).Info("transfer dispatched",
						zap.String("recipient", recipient.String()),
						zap.Uint64("lamports", lamports))
					fmt.Println(sig)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&walletsFile, "wallets", "", "path to a wallets YAML file")
	cmd.Flags().StringVar(&walletName, "wallet", "main", "wallet name inside the wallets file")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "skip the node-side simulation")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "return right after dispatch")
	return cmd
}

func newFeeCmd(o *rootOptions) *cobra.Command {
	var (
		walletsFile string
		walletName  string
	)
	cmd := &cobra.Command{
		Use:   "fee <recipient> <sol>",
		Short: "Estimate the fee for a transfer without sending it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				w, err := resolveWallet(a.cfg, walletsFile, walletName)
				if err != nil {
					return err
				}
				recipient, err := solana.PublicKeyFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid recipient: %w", err)
				}
				lamports, err := parseSOL(args[1])
				if err != nil {
					return err
				}

				recent, err := a.client.GetLatestBlockhash(ctx, "")
				if err != nil {
					return err
				}
				tx, err := solana.NewTransaction(
					[]solana.Instruction{w.TransferInstruction(recipient, lamports)},
					recent.Value.Blockhash,
					solana.TransactionPayer(w.PublicKey),
				)
				if err != nil {
					return err
				}

				fee, err := a.client.EstimateFee(ctx, tx, "")
				if err != nil {
					return err
				}
				fmt.Printf("%d lamports (%s SOL)\n", fee, formatSOL(fee))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&walletsFile, "wallets", "", "path to a wallets YAML file")
	cmd.Flags().StringVar(&walletName, "wallet", "main", "wallet name inside the wallets file")
	return cmd
}

func newConfirmCmd(o *rootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "confirm <signature>",
		Short: "Wait for a transaction to reach the target commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, cmd, func(ctx context.Context, a *app) error {
				sig, err := solana.SignatureFromBase58(args[0])
				if err != nil {
					return fmt.Errorf("invalid signature: %w", err)
				}
				status, err := a.client.ConfirmTransactionWithOpts(ctx, sig, client.ConfirmOpts{
					Timeout: timeout,
				})
				if err != nil {
					return err
				}
				fmt.Printf("reached %s at slot %d\n", status.ConfirmationStatus, status.Slot)
				if status.Err != nil {
					fmt.Printf("transaction failed on chain: %v\n", status.Err)
				}
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wall-clock wait bound (default from config)")
	return cmd
}

// resolveWallet picks the signing wallet: a named entry from a wallets file
// when one is given, the configured key otherwise.
func resolveWallet(cfg *config.Config, walletsFile, walletName string) (*wallet.Wallet, error) {
	if walletsFile != "" {
		wallets, err := wallet.Load(walletsFile)
		if err != nil {
			return nil, err
		}
		w, ok := wallets[walletName]
		if !ok {
			return nil, fmt.Errorf("wallet %q not found in %s", walletName, walletsFile)
		}
		return w, nil
	}
	if cfg.WalletKey == "" {
		return nil, fmt.Errorf("no wallet configured: set SOLANA_CLIENT_WALLET_KEY or pass --wallets")
	}
	return wallet.New(cfg.WalletKey)
}

func parseSOL(arg string) (uint64, error) {
	sol, err := strconv.ParseFloat(arg, 64)
	if err != nil || sol < 0 {
		return 0, fmt.Errorf("invalid SOL amount %q", arg)
	}
	return uint64(math.Round(sol * float64(solana.LAMPORTS_PER_SOL))), nil
}

func formatSOL(lamports uint64) string {
	return strconv.FormatFloat(float64(lamports)/float64(solana.LAMPORTS_PER_SOL), 'f', -1, 64)
}

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/syzygo/pkg/rconfig"
	"github.com/cuemby/syzygo/pkg/rlog"
	"github.com/cuemby/syzygo/pkg/rmetrics"
	"github.com/cuemby/syzygo/pkg/rstore"
	"github.com/cuemby/syzygo/pkg/runtime"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "syzygoctl",
	Short:   "syzygoctl - demonstration host for the syzygo runtime",
	Version: "dev",
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	cobra.OnInitialize(initLogging)

	runCmd.Flags().String("snapshot-dir", "", "Directory for the bbolt snapshot archive (default: a temp dir)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOut, _ := rootCmd.PersistentFlags().GetBool("log-json")
	rlog.Init(rlog.Config{Level: rlog.Level(level), JSONOutput: jsonOut})
}

func loadConfig(cmd *cobra.Command) rconfig.Config {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return rconfig.Default()
	}
	cfg, err := rconfig.Load(path)
	if err != nil {
		rlog.Errorf("falling back to default config", err)
		return rconfig.Default()
	}
	return cfg
}

// counterModel is the toy Model this demo host drives: a single integer
// counter, incremented by dispatched effects.
type counterModel struct {
	Value int
}

func (c counterModel) Snapshot() counterModel { return c }

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo runtime until interrupted, dispatching periodic effects",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		dataDir, _ := cmd.Flags().GetString("snapshot-dir")
		if dataDir == "" {
			dir, err := os.MkdirTemp("", "syzygoctl-")
			if err != nil {
				return fmt.Errorf("create snapshot dir: %w", err)
			}
			dataDir = dir
		}
		store, err := rstore.NewBoltSnapshotStore(dataDir)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		closeStore := runtime.Defer(func() {
			if err := store.Close(); err != nil {
				rlog.Errorf("closing snapshot store", err)
			}
		})
		defer closeStore.Run()

		var observer runtime.RuntimeObserver = rmetrics.NewObserver()
		rt := runtime.New(
			counterModel{},
			runtime.WithThreadPoolSize[counterModel](cfg.ThreadPoolSize),
			runtime.WithObserver[counterModel](observer),
			runtime.WithResource[*rstore.BoltSnapshotStore, counterModel](store),
		)

		if cfg.Metrics.Enabled {
			go func() {
				http.Handle("/metrics", rmetrics.Handler())
				rlog.Info(fmt.Sprintf("metrics listening on %s", cfg.Metrics.Addr))
				if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil {
					rlog.Errorf("metrics server exited unexpectedly", err)
				}
			}()
		}

		go rt.Run()
		defer rt.Stop()

		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		fmt.Printf("syzygoctl: dispatching one increment effect every 200ms, archiving to %s, Ctrl+C to stop\n", dataDir)
		for {
			select {
			case <-ticker.C:
				snapshot := make(chan counterModel, 1)
				rt.Dispatch(runtime.Of[counterModel](func(rt *runtime.Runtime[counterModel]) runtime.Batch[counterModel] {
					m := rt.Model()
					m.Value++
					*rt.ModelMut() = m

					snap := rt.CreateSnapshot()
					archive := runtime.Resource[*rstore.BoltSnapshotStore](rt)
					if _, err := archive.Put("latest", snap); err != nil {
						rlog.Errorf("archiving snapshot", err)
					}
					snapshot <- snap
					return nil
				}))

				// rt.Model() is only safe to read from the goroutine running
				// Run/HandleEffects; the effect above hands the snapshot
				// back over a channel instead of this goroutine touching
				// the Model directly.
				select {
				case m := <-snapshot:
					fmt.Printf("value=%d queue_len=%d subscribers=%d\n", m.Value, rt.QueueLen(), rt.SubscriberCount())
				case <-time.After(time.Second):
					rlog.Error("timed out waiting for dispatched effect to run")
				}
			case <-sigCh:
				fmt.Println("shutting down")
				return nil
			}
		}
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dispatch one effect against a fresh runtime and print its resulting state",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtime.New(counterModel{})

		done := rt.DispatchSync(func(rt *runtime.Runtime[counterModel]) runtime.Batch[counterModel] {
			*rt.ModelMut() = counterModel{Value: 1}
			return nil
		})
		rt.HandleEffects()
		<-done

		snapshot := rt.CreateSnapshot()
		out, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

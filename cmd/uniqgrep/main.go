package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/uniqgrep/internal/app/run"
	"github.com/John-Robertt/uniqgrep/internal/config"
	"github.com/John-Robertt/uniqgrep/internal/logger"
)

// Version 在构建时通过 -ldflags 注入。
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// execute 运行命令并返回进程退出码：0 成功，2 参数错误，1 其他失败。
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	c, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	if config.Code(err) == config.ErrCodeUsage {
		fmt.Fprintf(stderr, "%v\n\n%s", err, c.UsageString())
		return 2
	}
	fmt.Fprintln(stderr, err)
	return 1
}

type globalFlags struct {
	configPath string
	logLevel   string
	color      string
}

func (g *globalFlags) cliArgs(cmd *cobra.Command) config.CLIArgs {
	return config.CLIArgs{
		ConfigPath:  g.configPath,
		LogLevel:    g.logLevel,
		LogLevelSet: cmd.Flags().Changed("log-level"),
		Color:       g.color,
		ColorSet:    cmd.Flags().Changed("color"),
	}
}

func newRootCommand() *cobra.Command {
	var (
		g        globalFlags
		lang     string
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "uniqgrep <フォルダパス> <検索語ファイル> <出力ファイル>",
		Short: "HTML/CSS/JS ファイル内で1回だけ出現する検索語を検出します",
		Long: `フォルダ以下の .html / .css / .js ファイル（node_modules を除く）を走査し、
検索語ファイルの各行を大文字小文字を区別した文字列として数え、
全体でちょうど1回だけ出現した検索語とそのファイルパスを出力ファイルに書き出します。

終了コード: 0 成功, 1 入力エラー/実行エラー, 2 引数エラー`,
		Version:       Version,
		Args:          exactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("カレントディレクトリを取得できません: %w", err)
			}

			cli := g.cliArgs(cmd)
			cli.Root, cli.TermsFile, cli.Output = args[0], args[1], args[2]
			cli.Lang = lang
			cli.LangSet = cmd.Flags().Changed("lang")

			eff, err := config.LoadEffective(cwd, cli)
			if err != nil {
				return err
			}

			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), eff.LogLevel, eff.Color)
			rr, err := run.Execute(cmd.Context(), eff, newConsoleObserver(log))
			if err != nil {
				return err
			}
			emitSummary(log, rr)

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				return enc.Encode(rr)
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.Error{Code: config.ErrCodeUsage, Err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "設定ファイル（省略時はカレントディレクトリの "+config.FileName+" を任意で読み込み）")
	pf.StringVar(&g.logLevel, "log-level", config.DefaultLogLevel, "ログレベル: trace|debug|info|warn|error")
	pf.StringVar(&g.color, "color", config.DefaultColor, "色付き出力: auto|always|never")

	f := cmd.Flags()
	f.StringVar(&lang, "lang", config.DefaultLang, "出力ファイルのラベル言語: ja|en")
	f.BoolVar(&jsonFlag, "json", false, "実行結果を JSON として標準出力に書き出す")

	cmd.AddCommand(newTermsCommand(&g))
	return cmd
}

// exactArgs 与 cobra.ExactArgs 相同，但返回 usage 错误以便映射到退出码 2。
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &config.Error{
				Code: config.ErrCodeUsage,
				Err:  fmt.Errorf("位置引数は %d 個必要です（%d 個指定されました）", n, len(args)),
			}
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return &config.Error{
				Code: config.ErrCodeUsage,
				Err:  fmt.Errorf("位置引数は %d〜%d 個必要です（%d 個指定されました）", lo, hi, len(args)),
			}
		}
		return nil
	}
}

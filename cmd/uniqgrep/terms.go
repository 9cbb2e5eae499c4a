package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/uniqgrep/internal/config"
	"github.com/John-Robertt/uniqgrep/internal/harvest"
	"github.com/John-Robertt/uniqgrep/internal/infra/fsx"
	"github.com/John-Robertt/uniqgrep/internal/logger"
)

func newTermsCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "terms <フォルダパス> [出力ファイル]",
		Short: "HTML の class / id から検索語ファイルを生成します",
		Long: `フォルダ以下の .html ファイルを解析し、class 属性の各トークンと id 属性の値を
重複なし・ソート済みで1行ずつ出力します。出力ファイルを省略すると標準出力に書き出します。

生成したファイルはそのまま uniqgrep の検索語ファイルとして使えます。`,
		Args: rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("カレントディレクトリを取得できません: %w", err)
			}

			cli := g.cliArgs(cmd)
			cli.Root = args[0]
			eff, err := config.LoadEffective(cwd, cli)
			if err != nil {
				return err
			}
			if err := config.CheckRootDir(eff.Root); err != nil {
				return err
			}

			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), eff.LogLevel, eff.Color)
			res, err := harvest.Collect(eff.Root, harvest.Options{
				ExcludeDirs: eff.ExcludeDirs,
				OnPrune: func(dir string) {
					log.Infof("フォルダをスキップします: %s", dir)
				},
				OnSkip: func(path string, err error) {
					log.Warnf("エラー: %s - %v", path, err)
				},
			})
			if err != nil {
				return fmt.Errorf("走査に失敗しました: %w", err)
			}

			out := harvest.Format(res.Terms)
			if len(args) == 2 {
				if err := fsx.WriteFile(args[1], out); err != nil {
					return fmt.Errorf("書き込みに失敗しました %q: %w", args[1], err)
				}
			} else if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}

			log.Infof("解析した HTML ファイル数: %d（スキップ %d）", res.Files, res.Skipped)
			log.Infof("検索語候補: %d", len(res.Terms))
			return nil
		},
	}
}

// Package main provides localization for the framescope CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Step through a video and measure distances on its frames": "動画をコマ送りし、フレーム上の距離を計測します",

		// Key table
		"play":           "再生",
		"pause":          "一時停止",
		"next frame":     "次のフレーム",
		"previous frame": "前のフレーム",
		"screenshot":     "スクリーンショット",
		"exit":           "終了",

		// Runtime messages
		"Error input params":                             "入力パラメータが不正です",
		"Interrupted, shutting down...":                  "中断されました。シャットダウン中...",
		"Reviewed %d of %d frames, %d screenshots saved": "%d / %d フレームを確認し、%d 枚のスクリーンショットを保存しました",

		// Summary content
		"Review Summary":           "確認サマリー",
		"Generated":                "生成日時",
		"Session":                  "セッション",
		"Video":                    "動画",
		"Playback":                 "再生",
		"Measurement":              "計測",
		"Item":                     "項目",
		"Value":                    "値",
		"File":                     "ファイル",
		"Frame Count":              "フレーム数",
		"Framerate":                "フレームレート",
		"Rate":                     "再生レート",
		"Final Position":           "最終位置",
		"Frames Shown":             "表示フレーム数",
		"Frames Skipped":           "スキップフレーム数",
		"Seeks":                    "シーク回数",
		"Screenshots":              "スクリーンショット",
		"Reference Points":         "基準点",
		"Known Road Distance":      "既知の車線距離",
		"Roadside Hazard Distance": "路側障害物までの距離",
		"N/A":                      "該当なし",
		"None":                     "なし",
		"Generated by":             "生成:",
	})
}

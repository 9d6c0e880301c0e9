package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Session
		"Session %s: reviewing %s":                                                "セッション %s: %s を確認中",
		"Session %s ended: %d ticks, %d frames shown, %d skipped, %d screenshots": "セッション %s 終了: %d ティック, 表示 %d フレーム, スキップ %d, スクリーンショット %d 枚",
		"Failed to open video: %s":                                                "動画を開けませんでした: %s",
		"Native window unavailable: %s":                                           "ネイティブウィンドウを利用できません: %s",

		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Video source
		"Opened %s: %d frames, %.3f fps, %dx%d %s": "%s を開きました: %d フレーム, %.3f fps, %dx%d %s",
		"Decoded frame %d at %.3fs":                "フレーム %d (%.3f 秒) をデコードしました",

		// Playback
		"Playback started: %d frames at %.2f fps": "再生開始: %d フレーム, %.2f fps",
		"State changed to %s":                     "状態が %s に変わりました",
		"Seek to frame %d":                        "フレーム %d へ移動",
		"Rate set to %.2f fps":                    "再生レートを %.2f fps に設定しました",
		"Saved screenshot %s":                     "スクリーンショットを %s に保存しました",
		"Skipped frame %d: %v":                    "フレーム %d をスキップしました: %v",
		"Tick loop cancelled":                     "ティックループがキャンセルされました",

		// Input
		"Invalid key was pressed: %s":              "無効なキーが押されました: %s",
		"Command failed: %v":                       "コマンドが失敗しました: %v",
		"Command %s":                               "コマンド %s",
		"Input %s, exiting":                        "入力 %s のため終了します",
		"Reference point added at (%d, %d)":        "基準点を (%d, %d) に追加しました",
		"Reference points complete, click ignored": "基準点は設定済みのため、クリックを無視しました",
		"Step to frame %d not shown: %v":           "フレーム %d を表示できませんでした: %v",

		// Window
		"Window opened at %dx%d": "ウィンドウを %dx%d で開きました",
		"Window closed by user":  "ウィンドウがユーザーにより閉じられました",
	})
}

package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// IPC server
		"Listening for shapes on %s":           "%s でシェイプを待ち受けています",
		"Accept failed: %v":                    "接続の受け付けに失敗しました: %v",
		"Connection %s from %s":                "接続 %s (%s から)",
		"Connection %s: read failed: %v":       "接続 %s: 読み込みに失敗しました: %v",
		"Connection %s: empty message ignored": "接続 %s: 空のメッセージを無視しました",
		"Connection %s: rejected %d bytes: %v": "接続 %s: %d バイトを拒否しました: %v",
		"Received %d shapes (message %s)":      "%d 個のシェイプを受信しました (メッセージ %s)",
		"Sent %d bytes to %s":                  "%d バイトを %s に送信しました",

		// Player
		"Video loaded: %dx%d":                           "動画を読み込みました: %dx%d",
		"Masks set from editor: %d active":              "エディタからマスクを設定しました: %d 個",
		"Frame size changed to %dx%d, rebuilding masks": "フレームサイズが %dx%d に変わりました。マスクを再構築します",
		"Masking: %s":                                   "マスク: %s",
		"Playback: %s":                                  "再生: %s",
		"Fullscreen: %s":                                "フルスクリーン: %s",
		"End of stream, rewinding":                      "ストリームの終端に達しました。先頭に戻ります",
		"Display failed: %v":                            "表示に失敗しました: %v",
		"Fullscreen toggle failed: %v":                  "フルスクリーンの切り替えに失敗しました: %v",
		"Quit requested":                                "終了が要求されました",
		"Interrupted, shutting down...":                 "中断されました。シャットダウン中...",
		"Controls: SPACE pause/resume, m mask on/off, f fullscreen, q quit": "操作: SPACE 一時停止/再開, m マスク切替, f フルスクリーン, q 終了",

		// Sources and displays
		"Starting ffmpeg: %s":            "ffmpeg を起動中: %s",
		"Starting ffplay: %s":            "ffplay を起動中: %s",
		"Loaded %d still frames from %s": "%[2]s から %[1]d 枚の静止フレームを読み込みました",
		"Saved snapshot %s":              "スナップショット %s を保存しました",

		// Sender
		"Sending %d shapes to %s":           "%d 個のシェイプを %s に送信中",
		"Masks sent successfully":           "マスクを送信しました",
		"No closed shapes to send":          "送信できる閉じたシェイプがありません",
		"Cannot reach the player at %s: %v": "%s のプレイヤーに接続できません: %v",
		"Project saved to %s":               "プロジェクトを %s に保存しました",
	})
}

// Package main provides localization for the maskplay CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Connection":    "接続",
		"Logging":       "ログ",
		"Source":        "入力",
		"Playback":      "再生",
		"Display":       "表示",
		"Shapes":        "シェイプ",
		"Output":        "出力先",

		// Root command
		"Play a video with polygon masks sent from an editor": "エディタから送られた多角形マスクを適用して動画を再生",

		// Commands
		"Play a video and apply masks received from the editor": "動画を再生し、エディタから受信したマスクを適用",
		"Send closed shapes to a running player":                "閉じたシェイプを実行中のプレイヤーに送信",
		"Save shapes as a project file":                         "シェイプをプロジェクトファイルとして保存",
		"Show version information":                              "バージョン情報を表示",
		"maskplay version %s":                                   "maskplay バージョン %s",

		// Common flags
		"YAML configuration file":              "YAML設定ファイル",
		"Player address (host:port)":           "プレイヤーのアドレス（host:port）",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (text, json)":              "ログ形式（text, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Play flags
		"Video file to play": "再生する動画ファイル",
		"Directory of still images to play instead of a video":              "動画の代わりに再生する静止画のディレクトリ",
		"Scale frames to WxH":                                               "フレームを WxH に拡大縮小",
		"Stop at the end of the video":                                      "動画の終端で停止",
		"Display rate in frames per second":                                 "表示レート（フレーム/秒）",
		"Display kind (ffplay, snapshot, record, none)":                     "表示方式（ffplay, snapshot, record, none）",
		"Encode the masked output to this video file instead of showing it": "表示の代わりにマスク適用後の映像をこの動画ファイルにエンコード",
		"Start in fullscreen":                                               "フルスクリーンで開始",
		"Directory for snapshot frames":                                     "スナップショットの保存先ディレクトリ",
		"Draw mask outlines and labels":                                     "マスクの輪郭とラベルを描画",

		// Shape flags
		`Polygon in canvas pixels, e.g. "10,10 100,10 100,80" (repeatable)`: `キャンバス座標の多角形（例: "10,10 100,10 100,80"、複数指定可）`,
		"Editor canvas size WxH":             "エディタのキャンバスサイズ WxH",
		"Project file whose shapes are sent": "送信するシェイプを含むプロジェクトファイル",
		"Project file to write":              "書き出すプロジェクトファイル",

		// Errors
		"a video file or a frames directory is required": "動画ファイルまたはフレームディレクトリが必要です",
	})
}

package testtool

import (
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"audio_extract_service/pkg/config"
	"audio_extract_service/pkg/logger"

	"go.uber.org/zap"
)

// PprofAddr pprof 監控伺服器位址, 只聽本機
var PprofAddr = "127.0.0.1:6060"

// StartPprof 設定開啟且非 production 時啟動 pprof 監控伺服器
func StartPprof(enabled bool) bool {
	if !enabled {
		return false
	}
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return false
	}

	go func() {
		logger.Log.Info("Starting pprof server", zap.String("address", PprofAddr))
		if err := http.ListenAndServe(PprofAddr, nil); err != nil {
			logger.Log.Error("pprof server failed", zap.Error(err))
		}
	}()
	return true
}

// pprof 端點:
// 	•	/debug/pprof/ → 顯示所有可用的分析數據
// 	•	/debug/pprof/goroutine → 顯示所有 Goroutines
// 	•	/debug/pprof/heap → 顯示記憶體分配, PCM 緩衝區大小可從這裡確認
// 	•	/debug/pprof/profile → 執行 30 秒 CPU 分析

// go tool pprof http://127.0.0.1:6060/debug/pprof/heap

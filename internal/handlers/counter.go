package handlers

import (
	"os"
	"sync"
	"time"

	"stipendionetto/internal/logger"
	"stipendionetto/internal/models"

	"github.com/goccy/go-json"
)

type counterData struct {
	Calcoli int64            `json:"calcoli"`
	PerTipo map[string]int64 `json:"per_tipo"`
}

var (
	counterMu       sync.Mutex
	counterValue    int64
	counterPerTipo  = map[string]int64{}
	pendingWrites   int
	counterFilePath = "counter.json"
	flushTicker     *time.Ticker
)

const flushEveryN = 10
const flushInterval = 30 * time.Second

// InitCounter loads the persisted counter from path and starts the periodic
// flush. A missing or corrupt file starts from zero.
func InitCounter(path string) {
	counterMu.Lock()
	defer counterMu.Unlock()

	if path != "" {
		counterFilePath = path
	}
	counterValue = 0
	counterPerTipo = map[string]int64{}
	pendingWrites = 0

	data, err := os.ReadFile(counterFilePath)
	if err != nil {
		logger.Info("counter: file non trovato, si parte da zero", map[string]interface{}{"path": counterFilePath})
	} else {
		var cd counterData
		if err := json.Unmarshal(data, &cd); err != nil {
			logger.Warn("counter: file non leggibile, si parte da zero", map[string]interface{}{"error": err.Error()})
		} else {
			counterValue = cd.Calcoli
			for k, v := range cd.PerTipo {
				counterPerTipo[k] = v
			}
			logger.Info("counter: caricato", map[string]interface{}{"calcoli": counterValue})
		}
	}

	if flushTicker == nil {
		flushTicker = time.NewTicker(flushInterval)
		go func() {
			for range flushTicker.C {
				flushCounter()
			}
		}()
	}
}

func IncrementCounter(tipo string) int64 {
	counterMu.Lock()
	counterValue++
	counterPerTipo[tipo]++
	val := counterValue
	pendingWrites++
	shouldFlush := pendingWrites >= flushEveryN
	counterMu.Unlock()

	if shouldFlush {
		flushCounter()
	}
	return val
}

func GetCounter() models.Statistiche {
	counterMu.Lock()
	defer counterMu.Unlock()
	perTipo := make(map[string]int64, len(counterPerTipo))
	for k, v := range counterPerTipo {
		perTipo[k] = v
	}
	return models.Statistiche{CalcoliTotali: counterValue, PerTipo: perTipo}
}

// FlushCounter writes pending increments immediately; used at shutdown.
func FlushCounter() { flushCounter() }

func flushCounter() {
	counterMu.Lock()
	if pendingWrites == 0 {
		counterMu.Unlock()
		return
	}
	cd := counterData{Calcoli: counterValue, PerTipo: make(map[string]int64, len(counterPerTipo))}
	for k, v := range counterPerTipo {
		cd.PerTipo[k] = v
	}
	pendingWrites = 0
	path := counterFilePath
	counterMu.Unlock()

	data, err := json.Marshal(cd)
	if err != nil {
		logger.Error("counter: errore marshaling", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("counter: errore scrittura", map[string]interface{}{"path": path, "error": err.Error()})
	}
}

package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"

	outcomeDraw = "draw"
)

// Recorder counts controller events. It satisfies tictactoe.Observer.
type Recorder struct {
	moves    *prometheus.CounterVec
	finished *prometheus.CounterVec
	restarts prometheus.Counter
	length   prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	recorder := &Recorder{
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_moves_total",
				Help: "Total number of cell clicks by result",
			},
			[]string{"result"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tictactoe_games_finished_total",
				Help: "Total number of finished games by outcome",
			},
			[]string{"outcome"},
		),
		restarts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tictactoe_restarts_total",
				Help: "Total number of restarts",
			},
		),
		length: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tictactoe_game_length_moves",
				Help:    "Number of marks on the board when a game finished",
				Buckets: prometheus.LinearBuckets(5, 1, 5),
			},
		),
	}

	reg.MustRegister(recorder.moves, recorder.finished, recorder.restarts, recorder.length)

	return recorder
}

func (that *Recorder) MoveAccepted(game *entity.Game, _ int, outcome entity.Outcome) {
	that.moves.WithLabelValues(resultAccepted).Inc()

	if game.IsLive() {
		return
	}

	that.length.Observe(float64(game.Moves()))

	if game.IsDrawn() {
		that.finished.WithLabelValues(outcomeDraw).Inc()
		return
	}

	that.finished.WithLabelValues("win_" + strings.ToLower(outcome.Winner)).Inc()
}

func (that *Recorder) MoveRejected(_ *entity.Game, _ int) {
	that.moves.WithLabelValues(resultRejected).Inc()
}

func (that *Recorder) Restarted(_ *entity.Game) {
	that.restarts.Inc()
}

// Handler exposes everything gathered by reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

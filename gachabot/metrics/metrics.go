package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tensuraworld/gachabot/internal/domain/game"
)

// Metrics owns the bot's collectors. Each instance has its own registry so
// tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	commands       *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec
	throttled      *prometheus.CounterVec
	summons        *prometheus.CounterVec
	drawn          *prometheus.CounterVec
	battles        *prometheus.CounterVec
	purchases      prometheus.Counter
	questClaims    prometheus.Counter
	dailyClaims    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gachabot_commands_total",
			Help: "Slash commands and components handled, by outcome",
		}, []string{"name", "status"}),
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gachabot_command_duration_seconds",
			Help:    "Time spent handling a command",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
		throttled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gachabot_commands_throttled_total",
			Help: "Commands rejected by the per-user throttle",
		}, []string{"name"}),
		summons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gachabot_summons_total",
			Help: "Completed summons by batch size",
		}, []string{"count"}),
		drawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gachabot_characters_drawn_total",
			Help: "Characters drawn by rarity",
		}, []string{"rarity"}),
		battles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gachabot_battles_total",
			Help: "Resolved battles by result",
		}, []string{"result"}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gachabot_store_purchases_total",
			Help: "Completed store purchases",
		}),
		questClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gachabot_quest_claims_total",
			Help: "Quest rewards paid out",
		}),
		dailyClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gachabot_daily_claims_total",
			Help: "Daily rewards paid out",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.commands,
		m.commandLatency,
		m.throttled,
		m.summons,
		m.drawn,
		m.battles,
		m.purchases,
		m.questClaims,
		m.dailyClaims,
	)
	return m
}

// ObserveCommand is nil-safe so handlers can run without metrics.
func (m *Metrics) ObserveCommand(name, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(name, status).Inc()
	m.commandLatency.WithLabelValues(name).Observe(took.Seconds())
}

func (m *Metrics) Throttled(name string) {
	if m == nil {
		return
	}
	m.throttled.WithLabelValues(name).Inc()
}

func (m *Metrics) Summoned(characters []*game.Character) {
	if m == nil {
		return
	}
	m.summons.WithLabelValues(strconv.Itoa(len(characters))).Inc()
	for _, c := range characters {
		m.drawn.WithLabelValues(string(c.Rarity)).Inc()
	}
}

func (m *Metrics) Battled(tie bool) {
	if m == nil {
		return
	}
	result := "decided"
	if tie {
		result = "tie"
	}
	m.battles.WithLabelValues(result).Inc()
}

func (m *Metrics) Purchased() {
	if m == nil {
		return
	}
	m.purchases.Inc()
}

func (m *Metrics) QuestClaimed() {
	if m == nil {
		return
	}
	m.questClaims.Inc()
}

func (m *Metrics) DailyClaimed() {
	if m == nil {
		return
	}
	m.dailyClaims.Inc()
}

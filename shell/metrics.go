package shell

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const unknownCommand = "unknown"

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ushell_commands_total",
		Help: "Command lines dispatched, by command. Lines matching no command are counted as \"unknown\".",
	}, []string{"command"})
	lineOverflowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ushell_line_overflows_total",
		Help: "Command lines discarded for being too long.",
	})
	syscallFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ushell_syscall_failures_total",
		Help: "File syscalls that reported a failure, by command.",
	}, []string{"command"})
)

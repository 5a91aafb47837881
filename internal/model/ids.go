package model

import "fmt"

const (
	PrefixSummary   = "sum"
	PrefixNode      = "node"
	PrefixLink      = "link"
	PrefixInsight   = "ins"
	PrefixInjection = "inj"
	PrefixCard      = "card"
)

// FormatID renders the sequential identifier format, e.g. node_0007.
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s_%04d", prefix, n)
}

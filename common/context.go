package common

type DsContextKey string

const (
	ContextLogger DsContextKey = "ds.logger"
	ContextAction DsContextKey = "ds.action"
)

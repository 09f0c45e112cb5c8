package main

const (
	formatFlag      = "legacy"
	dustFlag        = "dust-threshold"
	minConfirmsFlag = "min-confirmations"
	outFlag         = "out"
	registryFlag    = "registry"
)

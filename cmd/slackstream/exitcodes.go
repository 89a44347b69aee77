package main

// Exit codes for slackstream commands
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (transport, decode, API, pagination contract)
	ExitConfigError     = 2 // Configuration error (missing token, unreadable registry)
	ExitChannelNotFound = 3 // Channel name not present in the registry
)

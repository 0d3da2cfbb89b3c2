package config

import "time"

// Embed colours
const (
	ErrorColor      = 0xE74C3C
	SuccessColor    = 0x2ECC71
	InfoColor       = 0x3498DB
	WarningColor    = 0xF1C40F
	BackgroundColor = 0x2B2D31

	RarityCommonColor    = 0x95A5A6
	RarityRareColor      = 0x3498DB
	RarityEpicColor      = 0x9B59B6
	RarityLegendaryColor = 0xF1C40F
	RarityMythicColor    = 0xE91E63
)

// Timeouts
const (
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	PresenceTimeout         = 5 * time.Second
	ShutdownTimeout         = 10 * time.Second
	AttachmentFetchTimeout  = 15 * time.Second
	BattleFrameDelay        = 900 * time.Millisecond
)

// Limits
const (
	QuestsPerPage       = 6
	SearchResultLimit   = 5
	NameLookupWorkers   = 4
	MaxAttachmentBytes  = 8 << 20
	DefaultThrottleRate = 5
	DefaultThrottleSpan = 10 * time.Second
)

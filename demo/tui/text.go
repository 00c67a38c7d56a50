package tui

// UI Text Constants
const (
	TextNoFile = "No file given; restart with -file <audio> to analyze something"

	// Footer
	TextFooterReady        = "Press 'u' to upload | Press 'q' or Ctrl+C to quit"
	TextFooterBusy         = "Press 'q' or Ctrl+C to quit"
	TextFooterDisconnected = "Press 'r' to retry connection | Press 'q' to quit"
)

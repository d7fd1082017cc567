package client

// Recognizer is the capability surface of a dictation engine. Platform
// implementations (browser speech recognition, a streaming backend, a
// test fake) are selected at startup; session logic depends only on
// this interface.
type Recognizer interface {
	// Start begins a recognition run. Results and the end-of-run signal
	// arrive on the handlers registered before Start.
	Start() error
	// Stop ends the current run. The OnEnd handler still fires.
	Stop()
	// SetHandlers registers the result and end callbacks. Must be
	// called before Start.
	SetHandlers(onResult func(transcript string), onEnd func())
}

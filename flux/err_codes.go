package flux

// CodeCallbackPanicked is reported when onNext or a completion callback panics.
const CodeCallbackPanicked = "CALLBACK_PANICKED"

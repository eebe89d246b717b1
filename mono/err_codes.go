package mono

// CodeNoValue is returned by Block when the Mono is empty.
const CodeNoValue = "NO_VALUE"

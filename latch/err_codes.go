package latch

// CodeAwaitCancelled is returned by Await when its context ends before the latch opens.
const CodeAwaitCancelled = "LATCH_AWAIT_CANCELLED"

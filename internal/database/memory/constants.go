package memory

// ErrMsgBeginTx prefixes a BeginTx that gave up waiting
const ErrMsgBeginTx = "failed to begin transaction"

package entities

// Identity is the caller's session identity, injected explicitly into every
// core operation instead of being read from ambient storage. UserID keys
// mirror records; WalletAddress is the vendor address for queries and must
// be present before any chain write.
type Identity struct {
	UserID        string
	WalletAddress string
}

// Authenticated reports whether a backend user is attached.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// WalletConnected reports whether a wallet address is attached.
func (i Identity) WalletConnected() bool {
	return i.WalletAddress != ""
}

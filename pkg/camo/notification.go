package camo

import (
	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/block"
)

// Notification tells a camo recipient that a payment is on its way.
//
// The sender publishes it as an ordinary send block: a small amount of
// funds to NotificationAccount, with the block's representative field
// set to RepresentativePayload. The payload is the ephemeral public
// key of the sender's ECDH exchange; it looks like any other
// representative to an outside observer.
//
// Note that NotificationAccount is publicly linked to the camo address.
type Notification struct {
	// NotificationAccount receives the notification transaction.
	NotificationAccount account.Account
	// RepresentativePayload must be set as the representative of the
	// block sending to NotificationAccount.
	RepresentativePayload account.Account
}

// NotificationFromBlock reads a notification back out of the block that
// carried it.
func NotificationFromBlock(b *block.Block) Notification {
	return Notification{
		NotificationAccount:   b.Account,
		RepresentativePayload: b.Representative,
	}
}

package camo

import (
	"filippo.io/edwards25519"

	"github.com/suffix-labs/camo-nano/pkg/account"
	"github.com/suffix-labs/camo-nano/pkg/base32"
	"github.com/suffix-labs/camo-nano/pkg/block"
	"github.com/suffix-labs/camo-nano/pkg/hashes"
	"github.com/suffix-labs/camo-nano/pkg/secret"
)

// ecdh compresses k·p into a 32-byte shared secret.
func ecdh(k *secret.Scalar, p *edwards25519.Point) *secret.Bytes32 {
	var out [32]byte
	copy(out[:], k.MulPoint(p).Bytes())
	return secret.NewBytes32(&out)
}

// partialKeys derives the per-index (spend, view) scalar pair from the
// view seed. The partial spend scalar is what a view-only wallet adds
// to the master spend point; the view scalar is independent per index.
func partialKeys(viewSeed *secret.Bytes32, i uint32) (spend, view *secret.Scalar) {
	sub := hashes.AccountSeed(viewSeed, i)
	defer sub.Wipe()
	wide := hashes.Sum512(sub.Slice())
	defer wide.Wipe()
	return hashes.ScalarFromHash(wide[:32]), hashes.ScalarFromHash(wide[32:64])
}

// keysV1 is the type 1 private key set: a combined private spend
// scalar and a private view scalar.
type keysV1 struct {
	versions     Versions
	privateSpend *secret.Scalar
	privateView  *secret.Scalar
}

func newKeysV1(masterSeed *secret.Bytes32, i uint32, versions Versions) *keysV1 {
	spendSeed := hashes.CamoSpendSeed(masterSeed)
	defer spendSeed.Wipe()
	masterSpend := hashes.AccountScalar(spendSeed, 0)
	defer masterSpend.Wipe()

	viewSeed := hashes.CamoViewSeed(masterSeed)
	defer viewSeed.Wipe()
	partialSpend, privateView := partialKeys(viewSeed, i)
	defer partialSpend.Wipe()

	return &keysV1{
		versions:     versions,
		privateSpend: masterSpend.Add(partialSpend),
		privateView:  privateView,
	}
}

func (k *keysV1) Versions() Versions { return k.versions }

func (k *keysV1) ViewKeys() ViewKeys {
	spend := k.privateSpend.MulBase()
	var compressed [32]byte
	copy(compressed[:], spend.Bytes())
	return &viewKeysV1{
		versions:        k.versions,
		compressedSpend: compressed,
		pointSpend:      spend,
		privateView:     k.privateView.Clone(),
	}
}

func (k *keysV1) Account() Account {
	return pointsToAccount(k.versions, k.privateSpend.MulBase(), k.privateView.MulBase())
}

func (k *keysV1) SignerKey() *account.Key {
	return account.KeyFromScalar(k.privateSpend.Clone())
}

func (k *keysV1) SignMessage(message []byte) account.Signature {
	signer := k.SignerKey()
	defer signer.Wipe()
	return signer.Sign(message)
}

func (k *keysV1) SignBlock(b *block.Block) account.Signature {
	h := b.Hash()
	return k.SignMessage(h[:])
}

func (k *keysV1) ReceiverECDH(n Notification) *secret.Bytes32 {
	return ecdh(k.privateView, n.RepresentativePayload.Point())
}

func (k *keysV1) DeriveKey(sharedSecret *secret.Bytes32, i uint32) *account.Key {
	d := hashes.AccountScalar(sharedSecret, i)
	defer d.Wipe()
	return account.KeyFromScalar(k.privateSpend.Add(d))
}

func (k *keysV1) Wipe() {
	k.privateSpend.Wipe()
	k.privateView.Wipe()
}

// viewKeysV1 is the type 1 view key set: the public spend key and the
// private view scalar.
type viewKeysV1 struct {
	versions        Versions
	compressedSpend [32]byte
	pointSpend      *edwards25519.Point
	privateView     *secret.Scalar
}

func newViewKeysV1(viewSeed *secret.Bytes32, masterSpend *edwards25519.Point, i uint32, versions Versions) *viewKeysV1 {
	partialSpend, privateView := partialKeys(viewSeed, i)
	defer partialSpend.Wipe()

	pointSpend := edwards25519.NewIdentityPoint().Add(masterSpend, partialSpend.MulBase())
	var compressed [32]byte
	copy(compressed[:], pointSpend.Bytes())
	return &viewKeysV1{
		versions:        versions,
		compressedSpend: compressed,
		pointSpend:      pointSpend,
		privateView:     privateView,
	}
}

func viewKeysV1FromBytes(b *secret.Bytes65) (*viewKeysV1, error) {
	pointSpend, err := account.ParsePoint(b[1:33])
	if err != nil {
		return nil, err
	}
	var scalarBytes [32]byte
	copy(scalarBytes[:], b[33:65])
	privateView, err := secret.ScalarFromCanonical(&scalarBytes)
	if err != nil {
		return nil, err
	}

	var compressed [32]byte
	copy(compressed[:], b[1:33])
	return &viewKeysV1{
		versions:        DecodeFromBits(b[0]),
		compressedSpend: compressed,
		pointSpend:      pointSpend,
		privateView:     privateView,
	}, nil
}

func (v *viewKeysV1) Versions() Versions { return v.versions }

func (v *viewKeysV1) Account() Account {
	return pointsToAccount(v.versions, v.pointSpend, v.privateView.MulBase())
}

func (v *viewKeysV1) Bytes() *secret.Bytes65 {
	scalarBytes := v.privateView.Bytes()
	var out [65]byte
	out[0] = v.versions.EncodeToBits()
	copy(out[1:33], v.compressedSpend[:])
	copy(out[33:65], scalarBytes[:])
	return secret.NewBytes65(&out)
}

func (v *viewKeysV1) SignerAccount() account.Account {
	return account.AccountFromPoint(v.pointSpend)
}

func (v *viewKeysV1) VerifySignature(message []byte, sig account.Signature) bool {
	return v.SignerAccount().Verify(message, sig)
}

func (v *viewKeysV1) ReceiverECDH(n Notification) *secret.Bytes32 {
	return ecdh(v.privateView, n.RepresentativePayload.Point())
}

func (v *viewKeysV1) DeriveAccount(sharedSecret *secret.Bytes32, i uint32) account.Account {
	return deriveOneTime(v.pointSpend, sharedSecret, i)
}

func (v *viewKeysV1) Wipe() {
	v.privateView.Wipe()
}

// accountV1 is the public type 1 camo address.
type accountV1 struct {
	text     string
	versions Versions
	// spend doubles as the signer account for notifications.
	spend account.Account
	view  account.Account
}

func pointsToAccount(versions Versions, spend, view *edwards25519.Point) *accountV1 {
	spendAccount := account.AccountFromPoint(spend)
	viewAccount := account.AccountFromPoint(view)
	compressedSpend := spendAccount.Compressed()
	compressedView := viewAccount.Compressed()

	data := make([]byte, 0, 70)
	data = append(data, versions.EncodeToBits())
	data = append(data, compressedSpend[:]...)
	data = append(data, compressedView[:]...)
	checksum := hashes.SumChecksum(data)
	reverseChecksum(checksum[:])
	data = append(data, checksum[:]...)

	return &accountV1{
		text:     AddressPrefix + base32.Encode(data),
		versions: versions,
		spend:    spendAccount,
		view:     viewAccount,
	}
}

func parseAccountV1(text string) (*accountV1, error) {
	if len(text) != AddressLength {
		return nil, account.ErrInvalidAddressLength
	}
	data, err := base32.Decode(text[len(AddressPrefix):])
	if err != nil {
		return nil, account.ErrInvalidBase32
	}

	checksum := hashes.SumChecksum(data[:65])
	reverseChecksum(checksum[:])
	for i := 0; i < 5; i++ {
		if data[65+i] != checksum[i] {
			return nil, account.ErrInvalidAddressChecksum
		}
	}

	var compressedSpend, compressedView [32]byte
	copy(compressedSpend[:], data[1:33])
	copy(compressedView[:], data[33:65])
	spendAccount, err := account.AccountFromBytes(compressedSpend)
	if err != nil {
		return nil, err
	}
	viewAccount, err := account.AccountFromBytes(compressedView)
	if err != nil {
		return nil, err
	}

	return &accountV1{
		text:     text,
		versions: DecodeFromBits(data[0]),
		spend:    spendAccount,
		view:     viewAccount,
	}, nil
}

func (a *accountV1) String() string { return a.text }

func (a *accountV1) Versions() Versions { return a.versions }

func (a *accountV1) SignerAccount() account.Account { return a.spend }

func (a *accountV1) VerifySignature(message []byte, sig account.Signature) bool {
	return a.spend.Verify(message, sig)
}

func (a *accountV1) SenderECDH(senderKey *account.Key, senderFrontier [32]byte) (*secret.Bytes32, Notification) {
	senderScalar := senderKey.Scalar().Bytes()
	compressedSpend := a.spend.Compressed()
	r := hashes.ScalarFromHash(senderScalar[:], senderFrontier[:], compressedSpend[:])
	defer r.Wipe()
	wipeBytes(senderScalar[:])

	return ecdh(r, a.view.Point()), a.notification(r)
}

func (a *accountV1) notification(r *secret.Scalar) Notification {
	payload := account.AccountFromPoint(r.MulBase())
	switch v, _ := a.versions.HighestSupported(); v {
	case Version1:
		return Notification{
			NotificationAccount:   a.spend,
			RepresentativePayload: payload,
		}
	default:
		panic("camo: account constructed with incompatible version")
	}
}

func (a *accountV1) DeriveAccount(sharedSecret *secret.Bytes32, i uint32) account.Account {
	return deriveOneTime(a.spend.Point(), sharedSecret, i)
}

func (a *accountV1) Equal(o Account) bool {
	return o != nil && a.text == o.String()
}

// deriveOneTime computes spend + H(secret, i)·G as an account.
func deriveOneTime(spend *edwards25519.Point, sharedSecret *secret.Bytes32, i uint32) account.Account {
	d := hashes.AccountScalar(sharedSecret, i)
	defer d.Wipe()
	p := edwards25519.NewIdentityPoint().Add(spend, d.MulBase())
	return account.AccountFromPoint(p)
}

func reverseChecksum(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

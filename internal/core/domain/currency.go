package domain

// Currency is the concrete currency identifier used by the hosting service:
// an opaque, case-sensitive token naming a distinct asset type ("USD",
// "BTC", "LOYALTY_POINTS"). The ledger core itself is generic over any
// comparable identifier type; this is the instantiation the HTTP surface
// exposes.
type Currency string

func (c Currency) String() string {
	return string(c)
}

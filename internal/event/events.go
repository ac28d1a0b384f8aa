package event

type Type string

const (
	ItemListedEvent    Type = "ItemListedEvent"
	ItemBoughtEvent    Type = "ItemBoughtEvent"
	ItemCancelledEvent Type = "ItemCancelledEvent"
)

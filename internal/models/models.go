package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Identity{},
		&Profile{},
		&Warehouse{},
		&Deal{},
		&Commitment{},
		&Invoice{},
		&LabelRequest{},
	}
}

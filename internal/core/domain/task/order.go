package task

import "fmt"

type OrderBy struct {
	value string
}

var (
	OrderByDateAsc    = OrderBy{value: "date_asc"}
	OrderByDateDesc   = OrderBy{value: "date_desc"}
	OrderByStartAtAsc = OrderBy{value: "start_at_asc"}
)

func (o OrderBy) String() string {
	if o.value == "" {
		return OrderByDateAsc.value
	}
	return o.value
}

func ParseOrderBy(raw string) (OrderBy, error) {
	switch raw {
	case "", OrderByDateAsc.value:
		return OrderByDateAsc, nil
	case OrderByDateDesc.value:
		return OrderByDateDesc, nil
	case OrderByStartAtAsc.value:
		return OrderByStartAtAsc, nil
	}
	return OrderBy{}, fmt.Errorf("invalid order_by value: %s", raw)
}

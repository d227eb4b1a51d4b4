package payments

// Method enumerates the supported payment methods. Adding one means adding
// a constant here and a case in Gateway.Charge.
type Method string

const (
	MethodCashOnDelivery Method = "cash_on_delivery"
	MethodMpesa          Method = "mpesa"
	MethodTigoPesa       Method = "tigo_pesa"
	MethodAirtelMoney    Method = "airtel_money"
	MethodCard           Method = "card"
)

var allMethods = []Method{
	MethodCashOnDelivery, MethodMpesa, MethodTigoPesa, MethodAirtelMoney, MethodCard,
}

func (m Method) Valid() bool {
	for _, known := range allMethods {
		if m == known {
			return true
		}
	}
	return false
}

// IsMobileMoney reports whether the method settles through a mobile money
// carrier and therefore needs a valid local phone number.
func (m Method) IsMobileMoney() bool {
	return m == MethodMpesa || m == MethodTigoPesa || m == MethodAirtelMoney
}

// RequiresDeliveryContact reports whether the method needs a delivery
// address and contact phone up front.
func (m Method) RequiresDeliveryContact() bool {
	return m == MethodCashOnDelivery || m.IsMobileMoney()
}

func (m Method) String() string {
	return string(m)
}

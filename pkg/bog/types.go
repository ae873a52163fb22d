package bog

import "encoding/json"

// BasketItem is one order line. UnitPrice is in tetri; the wire format
// wants major units with decimals, converted in toWire.
type BasketItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice int64
}

type CreateOrderRequest struct {
	ExternalOrderID string
	TotalAmount     int64 // tetri
	Basket          []BasketItem
	BuyerName       string
	BuyerPhone      string
	BuyerEmail      string
	CallbackURL     string
	SuccessURL      string
	FailURL         string
}

type CreateOrderResponse struct {
	OrderID     string
	RedirectURL string
}

// wire shapes for api.bog.ge/payments/v1

type wireBasketItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"description,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type wireOrderRequest struct {
	CallbackURL     string `json:"callback_url"`
	ExternalOrderID string `json:"external_order_id"`
	PurchaseUnits   struct {
		Currency    string           `json:"currency"`
		TotalAmount float64          `json:"total_amount"`
		Basket      []wireBasketItem `json:"basket"`
	} `json:"purchase_units"`
	RedirectURLs struct {
		Success string `json:"success"`
		Fail    string `json:"fail"`
	} `json:"redirect_urls"`
	Buyer struct {
		FullName string `json:"full_name,omitempty"`
		Email    string `json:"email,omitempty"`
		Phone    string `json:"phone_number,omitempty"`
	} `json:"buyer"`
}

type wireOrderResponse struct {
	ID    string `json:"id"`
	Links struct {
		Redirect struct {
			Href string `json:"href"`
		} `json:"redirect"`
	} `json:"_links"`
}

func (r CreateOrderRequest) toWire() wireOrderRequest {
	var w wireOrderRequest
	w.CallbackURL = r.CallbackURL
	w.ExternalOrderID = r.ExternalOrderID
	w.PurchaseUnits.Currency = "GEL"
	w.PurchaseUnits.TotalAmount = float64(r.TotalAmount) / 100
	for _, it := range r.Basket {
		w.PurchaseUnits.Basket = append(w.PurchaseUnits.Basket, wireBasketItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: float64(it.UnitPrice) / 100,
		})
	}
	w.RedirectURLs.Success = r.SuccessURL
	w.RedirectURLs.Fail = r.FailURL
	w.Buyer.FullName = r.BuyerName
	w.Buyer.Email = r.BuyerEmail
	w.Buyer.Phone = r.BuyerPhone
	return w
}

// PaymentDetails is BOG's receipt view of a payment. Raw keeps fields we
// do not model so the status endpoint can pass them through.
type PaymentDetails struct {
	OrderID     string `json:"order_id"`
	OrderStatus struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"order_status"`
	Raw json.RawMessage `json:"-"`
}

func (p *PaymentDetails) UnmarshalJSON(data []byte) error {
	type alias PaymentDetails
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PaymentDetails(a)
	p.Raw = append([]byte(nil), data...)
	return nil
}

package entities

// DrugRecord is one normalized catalog entry.
// ImageURL is empty when the export had no image for the product.
type DrugRecord struct {
	Name            string `json:"name" validate:"required"`
	Manufacturer    string `json:"manufacturer"`
	Efficacy        string `json:"efficacy"`
	Usage           string `json:"usage"`
	Precautions     string `json:"precautions"`
	PurchaseChannel string `json:"purchaseChannel" validate:"required"`
	ImageURL        string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

package pix

const (
	ProviderID = "br.gov.bcb.pix"

	tagMerchantAccount = "26"
	tagProvider        = "00"
	tagInstrumentKey   = "01"
)

// MerchantAccountInfo builds the nested merchant account information field
// carrying the provider identifier and the receiver's instrument key.
func MerchantAccountInfo(instrumentKey string) (string, error) {
	provider, err := EncodeField(tagProvider, ProviderID)
	if err != nil {
		return "", err
	}
	key, err := EncodeField(tagInstrumentKey, instrumentKey)
	if err != nil {
		return "", err
	}
	return EncodeField(tagMerchantAccount, provider+key)
}

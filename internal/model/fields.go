package model

// Field names of a raw transaction record in the bank export.
const (
	FieldEntryTime    = "entry_date_time"
	FieldValueTime    = "value_date"
	FieldPostingTime  = "posting_date"
	FieldPurchaseTime = "purchase_date"
	FieldAmount       = "transaction_amount"
	FieldMerchant     = "merchant_name"
	FieldCategoryID   = "category_id"
)

// Administrative fields of the bank export that carry no analytical value.
var AdministrativeFields = []string{
	"oldTransaction",
	"id",
	"credit_debit_indicator",
	"transaction_type",
	"transaction_sequence_number",
	"account_info",
	"verification_number_customer",
	"bgc_ticket_data",
}

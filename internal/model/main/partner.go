package mainmodel

import "time"

type Partner struct {
	PartnerID     uint64    `gorm:"column:partner_id;primaryKey"`
	Name          string    `gorm:"column:name;size:100;not null"`
	PropertyType  string    `gorm:"column:property_type;size:20;not null"` // residential/retail/office/university/transport/other
	ContactPerson string    `gorm:"column:contact_person;size:60"`
	Phone         string    `gorm:"column:phone;size:20;uniqueIndex;not null"`
	Email         string    `gorm:"column:email;size:120;index"`
	Address       string    `gorm:"column:address;size:255"`
	City          string    `gorm:"column:city;size:60"`
	State         string    `gorm:"column:state;size:60"`
	Pincode       string    `gorm:"column:pincode;size:10"`
	Lat           float64   `gorm:"column:lat"`
	Lng           float64   `gorm:"column:lng"`
	KycPan        string    `gorm:"column:kyc_pan;size:20"`
	KycGst        string    `gorm:"column:kyc_gst;size:20"`
	KycAadhaar    string    `gorm:"column:kyc_aadhaar;size:20"`
	PropertyProof string    `gorm:"column:property_proof_url;size:255"`
	IDProof       string    `gorm:"column:id_proof_url;size:255"`
	AgreementURL  string    `gorm:"column:agreement_url;size:255"`
	Verification  string    `gorm:"column:verification_status;size:10;index;default:pending"` // pending/approved/rejected
	GoogleID      string    `gorm:"column:google_id;size:64;index"`
	ApiKey        string    `gorm:"column:api_key;size:64;uniqueIndex"`
	IsApproved    bool      `gorm:"column:is_approved;index"`
	IsActive      bool      `gorm:"column:is_active;index;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Partner) TableName() string { return "w_partner" }

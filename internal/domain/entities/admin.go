package entities

// AdminDashboard aggregates platform-wide totals
type AdminDashboard struct {
	TotalUsers       int64  `json:"totalUsers"`
	ActiveUsers      int64  `json:"activeUsers"`
	RecentSignups    int64  `json:"recentSignups"`
	TotalInvestments int64  `json:"totalInvestments"`
	TotalInvested    string `json:"totalInvested"`
	ActiveInvested   string `json:"activeInvested"`
	ReferralEarned   string `json:"referralEarned"`
	ReferralClaimed  string `json:"referralClaimed"`
	ReferralPending  string `json:"referralPending"`
}

// TreasuryView exposes the contract's accumulated admin fee balances
type TreasuryView struct {
	PrimaryAdminWallet   string `json:"primaryAdminWallet"`
	SecondaryAdminWallet string `json:"secondaryAdminWallet"`
	PrimaryAdminFees     string `json:"primaryAdminFees"`
	SecondaryAdminFees   string `json:"secondaryAdminFees"`
}

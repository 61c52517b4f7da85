package domain

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusPaid     = "paid"
	WithdrawalStatusRejected = "rejected"
)

const (
	RoomStatusInactive = "inactive"
	RoomStatusFull     = "full"
	RoomStatusActive   = "active"
)

// Feed channel names, one per table.
const (
	TableRooms          = "rooms"
	TableRoomMembers    = "room_members"
	TablePromoCodes     = "promo_codes"
	TableWithdrawals    = "withdrawals"
	TableBalances       = "influencer_balances"
	TableStatusMessages = "status_messages"
)

// Layouts for the schedule columns on rooms.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

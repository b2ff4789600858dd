package topics

const (
	// Settlement
	BetSettled = "bet_settled"
)

// Canal Redis Pub/Sub para broadcast de liquidações
const ChannelBetSettled = "bet_settled_broadcast"

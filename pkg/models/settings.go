package models

// GuildSettings representa el documento en la colección "guild_settings".
// El motor de automod solo consume MuteRole y AutoModEnabled; el resto lo
// administra el dashboard.
type GuildSettings struct {
	GuildID        string `bson:"guildId" json:"guildId"`
	ModLogChannel  string `bson:"modLogChannel,omitempty" json:"modLogChannel,omitempty"`
	MuteRole       string `bson:"muteRole,omitempty" json:"muteRole,omitempty"`
	AutoModEnabled bool   `bson:"autoModEnabled" json:"autoModEnabled"`
	TicketsEnabled bool   `bson:"ticketsEnabled" json:"ticketsEnabled"`
	TicketCategory string `bson:"ticketCategory,omitempty" json:"ticketCategory,omitempty"`
}

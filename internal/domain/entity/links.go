package entity

// The helpers below mutate both sides of a relationship at once. Every
// orchestrator that adds a link goes through them so that the mirrored
// collections never drift apart. Entities must already carry their ids.

// LinkOwnedVideogame records that u purchased v.
func LinkOwnedVideogame(u *User, v *Videogame) {
	u.OwnedVideogameIDs.Add(v.ID)
	v.OwnerIDs.Add(u.ID)
}

// LinkPublishedVideogame records that vendor published v.
func LinkPublishedVideogame(vendor *Vendor, v *Videogame) {
	vendor.PublishedVideogameIDs.Add(v.ID)
	v.PublisherIDs.Add(vendor.ID)
}

// LinkCategoryVideogame places v in c.
func LinkCategoryVideogame(c *Category, v *Videogame) {
	id := c.ID
	v.CategoryID = &id
	c.VideogameIDs.Add(v.ID)
}

// LinkOrderVideogame adds v to o.
func LinkOrderVideogame(o *Order, v *Videogame) {
	o.VideogameIDs.Add(v.ID)
	v.OrderIDs.Add(o.ID)
}

// LinkUserOrder makes u the owner of o.
func LinkUserOrder(u *User, o *Order) {
	o.UserID = u.ID
	u.OrderIDs.Add(o.ID)
}

// LinkUserTransaction makes u the owner of t.
func LinkUserTransaction(u *User, t *Transaction) {
	t.UserID = u.ID
	u.TransactionIDs.Add(t.ID)
}

// LinkOrderTransaction records that t settles o.
func LinkOrderTransaction(o *Order, t *Transaction) {
	tid, oid := t.ID, o.ID
	o.TransactionID = &tid
	t.OrderID = &oid
}

// LinkUserBadge gives b to u.
func LinkUserBadge(u *User, b *Badge) {
	id := u.ID
	b.UserID = &id
	u.BadgeIDs.Add(b.ID)
}

// LinkUserReport records u as the author of r.
func LinkUserReport(u *User, r *Report) {
	id := u.ID
	r.UserID = &id
	u.ReportIDs.Add(r.ID)
}

// LinkUserSupportTicket records u as the author of t.
func LinkUserSupportTicket(u *User, t *SupportTicket) {
	id := u.ID
	t.UserID = &id
	u.SupportTicketIDs.Add(t.ID)
}

// LinkChallengeVideogame attaches c to v.
func LinkChallengeVideogame(c *Challenge, v *Videogame) {
	c.VideogameIDs.Add(v.ID)
	v.ChallengeIDs.Add(c.ID)
}

// LinkChallengeBadge makes b a reward of c.
func LinkChallengeBadge(c *Challenge, b *Badge) {
	c.BadgeIDs.Add(b.ID)
	b.ChallengeIDs.Add(c.ID)
}

// LinkModeratorReport records that m handles r. It reports whether the link is new.
func LinkModeratorReport(m *Moderator, r *Report) bool {
	added := m.ReportIDs.Add(r.ID)
	r.ModeratorIDs.Add(m.ID)

	return added
}

// LinkModeratorSupportTicket records that m handles t. It reports whether the link is new.
func LinkModeratorSupportTicket(m *Moderator, t *SupportTicket) bool {
	added := m.SupportTicketIDs.Add(t.ID)
	t.ModeratorIDs.Add(m.ID)

	return added
}

package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// NameCache is an in-memory LRU cache for guild member display names with
// time-based expiration, so reaction announcements don't hit the member
// endpoint on every grant.
type NameCache struct {
	lru *expirable.LRU[string, string]
}

// NewNameCache creates a new display-name cache with the specified size and TTL.
func NewNameCache(size int, ttl time.Duration) *NameCache {
	return &NameCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// DisplayName resolves the display name for a guild member, preferring the
// guild nickname, then the global name, then the account username. Falls back
// to the raw user ID when the member lookup fails.
func (c *NameCache) DisplayName(s *discordgo.Session, guildID, userID string) string {
	key := guildID + ":" + userID
	if name, found := c.lru.Get(key); found {
		return name
	}

	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return userID
	}

	name := member.Nick
	if name == "" && member.User != nil {
		name = member.User.GlobalName
		if name == "" {
			name = member.User.Username
		}
	}
	if name == "" {
		return userID
	}

	c.lru.Add(key, name)
	return name
}

// Invalidate removes a member from the cache.
// Useful when a nickname change event arrives.
func (c *NameCache) Invalidate(guildID, userID string) {
	c.lru.Remove(guildID + ":" + userID)
}

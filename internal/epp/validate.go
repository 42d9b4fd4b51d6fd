package epp

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ValidationError reports a command missing a field the registry requires.
// The engine itself never enforces presence; callers opt in with Validate.
type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("epp: validate: kind=%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("epp: validate: kind=%s field=%s: %s", e.Kind, e.Field, e.Reason)
}

type Requirement struct {
	Field   string
	Present func(c *Command) bool
}

func need(field string, present func(c *Command) bool) Requirement {
	return Requirement{Field: field, Present: present}
}

var requirements = map[string][]Requirement{
	"login": {
		need("clID", func(c *Command) bool { return c.Login.ClID != "" }),
		need("pw", func(c *Command) bool { return c.Login.Pw != "" }),
		need("options/version", func(c *Command) bool { return c.Login.Options != nil && c.Login.Options.Version != "" }),
		need("options/lang", func(c *Command) bool { return c.Login.Options != nil && c.Login.Options.Lang != "" }),
	},
	"logout": {},
	"poll": {
		need("@op", func(c *Command) bool { return c.Poll.Op == "req" || c.Poll.Op == "ack" }),
		need("@msgID", func(c *Command) bool { return c.Poll.Op != "ack" || c.Poll.MsgID != "" }),
	},
	"domain:check": {
		need("domain:name", func(c *Command) bool { return len(c.Check.Domain.Names) > 0 }),
	},
	"contact:check": {
		need("contact:id", func(c *Command) bool { return len(c.Check.Contact.IDs) > 0 }),
	},
	"domain:info": {
		need("domain:name", func(c *Command) bool { return c.Info.Domain.Name != "" }),
	},
	"contact:info": {
		need("contact:id", func(c *Command) bool { return c.Info.Contact.ID != "" }),
	},
	"domain:create": {
		need("domain:name", func(c *Command) bool { return c.Create.Domain.Name != "" }),
		need("domain:authInfo", func(c *Command) bool { return c.Create.Domain.AuthInfo != nil }),
	},
	"contact:create": {
		need("contact:id", func(c *Command) bool { return c.Create.Contact.ID != "" }),
		need("contact:postalInfo", func(c *Command) bool { return c.Create.Contact.PostalInfo != nil }),
		need("contact:email", func(c *Command) bool { return c.Create.Contact.Email != "" }),
		need("contact:authInfo", func(c *Command) bool { return c.Create.Contact.AuthInfo != nil }),
	},
	"domain:update": {
		need("domain:name", func(c *Command) bool { return c.Update.Domain.Name != "" }),
	},
	"contact:update": {
		need("contact:id", func(c *Command) bool { return c.Update.Contact.ID != "" }),
	},
	"domain:delete": {
		need("domain:name", func(c *Command) bool { return c.Delete.Domain.Name != "" }),
	},
	"contact:delete": {
		need("contact:id", func(c *Command) bool { return c.Delete.Contact.ID != "" }),
	},
	"domain:transfer": {
		need("@op", func(c *Command) bool { return c.Transfer.Op != "" }),
		need("domain:name", func(c *Command) bool { return c.Transfer.Domain.Name != "" }),
	},
}

// Validate enforces the required fields of an outbound command. Hello is
// always valid; responses and greetings are not checked.
func Validate(m *Message) error {
	if m == nil || m.Kind() == "" {
		return ValidationError{Reason: "empty message"}
	}
	if m.Command == nil {
		return nil
	}
	kind := m.Command.Kind()
	log.Debug().Str("kind", kind).Msg("epp.Validate")
	reqs, ok := requirements[kind]
	if !ok {
		log.Error().Str("kind", kind).Msg("epp.Validate unknown command kind")
		return ValidationError{Kind: kind, Reason: "unknown command kind"}
	}
	for _, req := range reqs {
		if !req.Present(m.Command) {
			log.Error().Str("kind", kind).Str("field", req.Field).Msg("epp.Validate missing field")
			return ValidationError{Kind: kind, Field: req.Field, Reason: "missing required field"}
		}
	}
	return nil
}

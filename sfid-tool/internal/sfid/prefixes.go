package sfid

// UnknownObjectType is reported for prefixes missing from the static table.
const UnknownObjectType = "Unknown"

// objectTypes holds well-known standard object key prefixes.
var objectTypes = map[string]string{
	"001": "Account",
	"002": "Note",
	"003": "Contact",
	"005": "User",
	"006": "Opportunity",
	"007": "Activity",
	"008": "OpportunityHistory",
	"00D": "Organization",
	"00E": "UserRole",
	"00G": "Group",
	"00I": "AccountTeamMember",
	"00N": "CustomFieldDefinition",
	"00O": "Report",
	"00Q": "Lead",
	"00T": "Task",
	"015": "Dashboard",
	"500": "Case",
	"501": "Solution",
	"701": "Campaign",
	"800": "Contract",
}

// ObjectType looks up the standard object name for a key prefix.
func ObjectType(prefix string) (string, bool) {
	name, ok := objectTypes[prefix]
	return name, ok
}

// ObjectType returns the standard object name for the id's prefix, or
// UnknownObjectType.
func (id ID) ObjectType() string {
	if name, ok := ObjectType(id.prefix); ok {
		return name
	}
	return UnknownObjectType
}

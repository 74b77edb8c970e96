package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID          string   `dynamodbav:"userId" json:"userId"`
	Name            string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Email           string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Bio             string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	City            string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Avatar          string   `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`
	Interests       []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	TrustedContacts []string `dynamodbav:"trustedContacts,omitempty" json:"trustedContacts,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

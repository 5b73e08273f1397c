package models

// PublicUser carries the public-safe fields of a principal owned by the
// external identity service. Credentials and session data never pass
// through this service.
type PublicUser struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	Image         *string  `json:"image,omitempty" db:"image"`
	ImageCldPubID *string  `json:"imageCldPubId,omitempty" db:"image_cld_pub_id"`
	Role          RoleType `json:"role" db:"role"`
}

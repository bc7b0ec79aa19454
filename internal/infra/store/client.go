package store

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewClient creates the shared Supabase client used by all stores.
func NewClient(supabaseURL, serviceKey string) (*supa.Client, error) {
	client, err := supa.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return client, nil
}

package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errTeamNotFound      = "Team not found"
	errUserNotFound      = "User not found"
	errAPIKeyNotFound    = "API key not found"
	errImageNotFound     = "Image not found"
	errPrefixEmpty       = "prefix cannot be empty"
	errTeamHasUsers      = "Cannot delete team with active users. Reassign or delete users first."
	errUsernameTaken     = "Username already registered"
	errEmailTaken        = "Email already registered"
	errUserIdentityTaken = "username or email already registered"

	constraintUsersUsername = "users_username_key"
	constraintUsersEmail    = "users_email_key"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedStartTransactionFmt     = "failed to start transaction: %w"
	errFailedCommitTransactionFmt    = "failed to commit transaction: %w"

	errFailedCreateTeamFmt = "failed to create team: %w"
	errFailedGetTeamFmt    = "failed to get team: %w"
	errFailedListTeamsFmt  = "failed to list teams: %w"
	errFailedScanTeamFmt   = "failed to scan team: %w"
	errFailedUpdateTeamFmt = "failed to update team: %w"
	errFailedDeleteTeamFmt = "failed to delete team: %w"
	errIterateTeamsFmt     = "error iterating teams: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"
	errFailedListUsersFmt  = "failed to list users: %w"
	errFailedScanUserFmt   = "failed to scan user: %w"
	errFailedCountUsersFmt = "failed to count users: %w"
	errFailedUpdateUserFmt = "failed to update user: %w"
	errFailedDeleteUserFmt = "failed to delete user: %w"
	errIterateUsersFmt     = "error iterating users: %w"

	errFailedCreateAPIKeyFmt      = "failed to create API key: %w"
	errFailedGetAPIKeyFmt         = "failed to get API key: %w"
	errFailedListAPIKeysFmt       = "failed to list API keys: %w"
	errFailedScanAPIKeyFmt        = "failed to scan API key: %w"
	errFailedUpdateAPIKeyFmt      = "failed to update API key: %w"
	errFailedUpdateLastUsedFmt    = "failed to update last used: %w"
	errFailedDeleteAPIKeyFmt      = "failed to delete API key: %w"
	errFailedDeleteUserAPIKeysFmt = "failed to delete user API keys: %w"
	errIterateAPIKeysFmt          = "error iterating API keys: %w"

	errFailedCreateImageFmt      = "failed to create image: %w"
	errFailedGetImageFmt         = "failed to get image: %w"
	errFailedListImagesFmt       = "failed to list images: %w"
	errFailedScanImageFmt        = "failed to scan image: %w"
	errFailedUpdateImageFmt      = "failed to update image: %w"
	errFailedDeleteImageFmt      = "failed to delete image: %w"
	errFailedDeleteTeamImagesFmt = "failed to delete team images: %w"
	errIterateImagesFmt          = "error iterating images: %w"
)

var (
	errFailedCommitTransaction    = func(err error) error { return fmt.Errorf(errFailedCommitTransactionFmt, err) }
	errFailedCountUsers           = func(err error) error { return fmt.Errorf(errFailedCountUsersFmt, err) }
	errFailedCreateAPIKey         = func(err error) error { return fmt.Errorf(errFailedCreateAPIKeyFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedCreateImage          = func(err error) error { return fmt.Errorf(errFailedCreateImageFmt, err) }
	errFailedCreateTeam           = func(err error) error { return fmt.Errorf(errFailedCreateTeamFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedDeleteAPIKey         = func(err error) error { return fmt.Errorf(errFailedDeleteAPIKeyFmt, err) }
	errFailedDeleteImage          = func(err error) error { return fmt.Errorf(errFailedDeleteImageFmt, err) }
	errFailedDeleteTeam           = func(err error) error { return fmt.Errorf(errFailedDeleteTeamFmt, err) }
	errFailedDeleteTeamImages     = func(err error) error { return fmt.Errorf(errFailedDeleteTeamImagesFmt, err) }
	errFailedDeleteUser           = func(err error) error { return fmt.Errorf(errFailedDeleteUserFmt, err) }
	errFailedDeleteUserAPIKeys    = func(err error) error { return fmt.Errorf(errFailedDeleteUserAPIKeysFmt, err) }
	errFailedGetAPIKey            = func(err error) error { return fmt.Errorf(errFailedGetAPIKeyFmt, err) }
	errFailedGetImage             = func(err error) error { return fmt.Errorf(errFailedGetImageFmt, err) }
	errFailedGetTeam              = func(err error) error { return fmt.Errorf(errFailedGetTeamFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedListAPIKeys          = func(err error) error { return fmt.Errorf(errFailedListAPIKeysFmt, err) }
	errFailedListImages           = func(err error) error { return fmt.Errorf(errFailedListImagesFmt, err) }
	errFailedListTeams            = func(err error) error { return fmt.Errorf(errFailedListTeamsFmt, err) }
	errFailedListUsers            = func(err error) error { return fmt.Errorf(errFailedListUsersFmt, err) }
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedScanAPIKey           = func(err error) error { return fmt.Errorf(errFailedScanAPIKeyFmt, err) }
	errFailedScanImage            = func(err error) error { return fmt.Errorf(errFailedScanImageFmt, err) }
	errFailedScanTeam             = func(err error) error { return fmt.Errorf(errFailedScanTeamFmt, err) }
	errFailedScanUser             = func(err error) error { return fmt.Errorf(errFailedScanUserFmt, err) }
	errFailedStartTransaction     = func(err error) error { return fmt.Errorf(errFailedStartTransactionFmt, err) }
	errFailedUpdateAPIKey         = func(err error) error { return fmt.Errorf(errFailedUpdateAPIKeyFmt, err) }
	errFailedUpdateImage          = func(err error) error { return fmt.Errorf(errFailedUpdateImageFmt, err) }
	errFailedUpdateLastUsed       = func(err error) error { return fmt.Errorf(errFailedUpdateLastUsedFmt, err) }
	errFailedUpdateTeam           = func(err error) error { return fmt.Errorf(errFailedUpdateTeamFmt, err) }
	errFailedUpdateUser           = func(err error) error { return fmt.Errorf(errFailedUpdateUserFmt, err) }
	errIterateAPIKeys             = func(err error) error { return fmt.Errorf(errIterateAPIKeysFmt, err) }
	errIterateImages              = func(err error) error { return fmt.Errorf(errIterateImagesFmt, err) }
	errIterateTeams               = func(err error) error { return fmt.Errorf(errIterateTeamsFmt, err) }
	errIterateUsers               = func(err error) error { return fmt.Errorf(errIterateUsersFmt, err) }
)

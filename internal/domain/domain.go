package domain

// KeyPrefix namespaces all photodex keys in the database.
const KeyPrefix = "photodex:"

// PhotoKeyPrefix is the key prefix for photo document hashes.
const PhotoKeyPrefix = KeyPrefix + "photos:"

// PhotoIndexName is the FT index over photo documents.
const PhotoIndexName = KeyPrefix + "photos:idx"

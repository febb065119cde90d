package mysql

// Schema holds the DDL for the two tables this repo owns. The refresher
// applies it at startup so a fresh database needs no manual migration step.
const Schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
  id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  name       VARCHAR(255)    NOT NULL,
  email      VARCHAR(320)    NULL,
  phone      VARCHAR(32)     NULL,
  message    TEXT            NOT NULL,
  lang       VARCHAR(8)      NOT NULL DEFAULT 'he',
  created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_contact_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

CREATE TABLE IF NOT EXISTS review_snapshots (
  id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  place_id       VARCHAR(128)    NOT NULL,
  average_rating DECIMAL(3,2)    NOT NULL,
  total_count    INT             NOT NULL,
  fetched_at     TIMESTAMP       NOT NULL,
  reviews        JSON            NOT NULL,
  created_at     TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  UNIQUE KEY uq_snapshot_place_fetch (place_id, fetched_at),
  KEY idx_snapshot_place (place_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

const insertMessageSQL = `
INSERT INTO contact_messages
  (name, email, phone, message, lang, created_at)
VALUES
  (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
`

const listMessagesSQL = `
SELECT id, name, email, phone, message, lang, created_at
FROM contact_messages
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// A snapshot whose fetch time was already archived is refreshed in place;
// the unique key on (place_id, fetched_at) makes the refresher idempotent.
const archiveSnapshotSQL = `
INSERT INTO review_snapshots
  (place_id, average_rating, total_count, fetched_at, reviews)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  average_rating = VALUES(average_rating),
  total_count    = VALUES(total_count),
  reviews        = VALUES(reviews)
`

package mysql

// Schema bootstrap. hotels.name is utf8mb4_bin so uniqueness and the
// duplicate check are case-sensitive exact matches. Bookings carry no
// foreign keys: deleting a hotel keeps its historical bookings.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS hotels (
  id          CHAR(36) NOT NULL,
  name        VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
  location    VARCHAR(255) NOT NULL DEFAULT '',
  description TEXT,
  created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  UNIQUE KEY uq_hotels_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
  id            CHAR(36) NOT NULL,
  email         VARCHAR(255) NOT NULL,
  pseudo        VARCHAR(255) NOT NULL DEFAULT '',
  password_hash VARCHAR(255) NOT NULL,
  role          TINYINT NOT NULL DEFAULT 0,
  created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  UNIQUE KEY uq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
  id         CHAR(36) NOT NULL,
  hotel_id   CHAR(36) NOT NULL,
  user_id    CHAR(36) NOT NULL,
  start_date DATE NOT NULL,
  end_date   DATE NOT NULL,
  nb_person  INT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (id),
  KEY idx_bookings_hotel_dates (hotel_id, start_date, end_date),
  KEY idx_bookings_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// -----------------------------------------------------------------------------
// Hotels
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels (id, name, location, description)
VALUES (?, ?, ?, ?)
`

const getHotelByIDSQL = `
SELECT id, name, location, description FROM hotels WHERE id = ?
`

const getHotelByNameSQL = `
SELECT id, name, location, description FROM hotels WHERE name = ?
`

const updateHotelSQL = `
UPDATE hotels SET name = ?, location = ?, description = ? WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

// lockHotelSQL serializes booking writers per hotel: the row lock holds
// until the surrounding transaction commits.
const lockHotelSQL = `SELECT id FROM hotels WHERE id = ? FOR UPDATE`

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

const insertUserSQL = `
INSERT INTO users (id, email, pseudo, password_hash, role)
VALUES (?, ?, ?, ?, ?)
`

const getUserByIDSQL = `
SELECT id, email, pseudo, password_hash, role FROM users WHERE id = ?
`

const getUserByEmailSQL = `
SELECT id, email, pseudo, password_hash, role FROM users WHERE email = ?
`

const updateUserSQL = `
UPDATE users SET email = ?, pseudo = ?, password_hash = ?, role = ? WHERE id = ?
`

const deleteUserSQL = `DELETE FROM users WHERE id = ?`

const listUsersSQL = `
SELECT id, email, pseudo, password_hash, role
FROM users
ORDER BY created_at ASC, id ASC
LIMIT ? OFFSET ?
`

// -----------------------------------------------------------------------------
// Bookings
// -----------------------------------------------------------------------------

// Inclusive-boundary interval intersection: existing.start <= new.end
// AND existing.end >= new.start. excludeID is '' when no booking is to
// be left out of the search.
const overlapExistsSQL = `
SELECT EXISTS(
  SELECT 1 FROM bookings
  WHERE hotel_id = ? AND start_date <= ? AND end_date >= ? AND id <> ?
)
`

const insertBookingSQL = `
INSERT INTO bookings (id, hotel_id, user_id, start_date, end_date, nb_person)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings SET start_date = ?, end_date = ?, nb_person = ? WHERE id = ?
`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

// bookingViewSelect joins each booking with its user and hotel in one
// statement; deleted hotels/users leave NULL summaries, never an N+1
// per-record fetch. Ordering by (created_at, id) keeps pagination
// stable across calls.
const bookingViewSelect = `
SELECT
  b.id, b.start_date, b.end_date, b.nb_person, b.created_at, b.updated_at,
  b.hotel_id, h.name, h.location,
  b.user_id, u.pseudo, u.email
FROM bookings b
LEFT JOIN hotels h ON h.id = b.hotel_id
LEFT JOIN users  u ON u.id = b.user_id
`

const getBookingSQL = bookingViewSelect + `WHERE b.id = ?`

const listBookingsByUserSQL = bookingViewSelect + `
WHERE b.user_id = ?
ORDER BY b.created_at ASC, b.id ASC
`

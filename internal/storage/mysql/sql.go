package mysql

// Note: ids are 24-char hex strings so both backends share one identity format.

const listReviewsSQL = `
SELECT id, product_id, review_text
FROM reviews
WHERE product_id = ?
ORDER BY id
`

const listProductIDsSQL = `SELECT id FROM products ORDER BY id`

const listProductsSQL = `
SELECT id, name, price, image, score
FROM products
ORDER BY id
`

// updated_at is bumped by the column definition, so the write happens even
// when the score is unchanged.
const setScoreSQL = `UPDATE products SET score = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
